package model

// swagger:model Question
type Question struct {
	BaseModel

	Level         int    `gorm:"index;not null" json:"level"`
	Content       string `gorm:"type:text;not null" json:"content"`
	Options       string `gorm:"type:json" json:"options"` // 选择题选项（JSON array）
	CorrectOption int    `gorm:"not null" json:"correctOption"`
	Points        int    `gorm:"default:1" json:"points"`
	Enabled       bool   `gorm:"default:true" json:"enabled"`
	CreatedBy     uint   `gorm:"index" json:"createdBy"`
}

func (Question) TableName() string {
	return "questions"
}
