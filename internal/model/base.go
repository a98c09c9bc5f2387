package model

import (
	"time"

	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AllModels 自动迁移涉及的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&School{},
		&User{},
		&Question{},
		&QuizAttempt{},
		&Product{},
		&Voucher{},
	}
}
