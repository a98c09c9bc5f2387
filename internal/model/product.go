package model

// Product 可用代金券兑换的礼品
// swagger:model Product
type Product struct {
	BaseModel
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	PriceCents  int64  `gorm:"not null" json:"priceCents"`
	Stock       int    `gorm:"default:0" json:"stock"`
	ImageURL    string `gorm:"size:500" json:"imageUrl"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (Product) TableName() string {
	return "products"
}
