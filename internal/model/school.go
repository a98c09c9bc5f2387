package model

// School 学校目录
// swagger:model School
type School struct {
	BaseModel
	Name         string `gorm:"size:255;not null" json:"name"`
	Code         string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	City         string `gorm:"size:100;index" json:"city"`
	Address      string `gorm:"size:500" json:"address"`
	ContactEmail string `gorm:"size:100" json:"contactEmail"`
}

func (School) TableName() string {
	return "schools"
}
