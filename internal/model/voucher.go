package model

import "time"

type VoucherState string

const (
	VoucherActive   VoucherState = "active"
	VoucherRedeemed VoucherState = "redeemed"
	VoucherExpired  VoucherState = "expired"
)

// Voucher 排名奖励代金券，每次测验最多一张
// swagger:model Voucher
type Voucher struct {
	BaseModel
	Code            string       `gorm:"size:32;uniqueIndex;not null" json:"code"`
	UserID          uint         `gorm:"index;not null" json:"userId"`
	AttemptID       uint         `gorm:"uniqueIndex;not null" json:"attemptId"`
	QuizDate        string       `gorm:"size:10;not null" json:"quizDate"`
	Rank            int          `gorm:"not null" json:"rank"`
	DiscountPercent int          `gorm:"not null" json:"discountPercent"`
	ExpiresAt       time.Time    `gorm:"index;not null" json:"expiresAt"`
	State           VoucherState `gorm:"size:20;index;default:'active'" json:"state"`
	RedeemedAt      *time.Time   `json:"redeemedAt,omitempty"`
	ProductID       *uint        `json:"productId,omitempty"`
}

func (Voucher) TableName() string {
	return "vouchers"
}

// IsExpired 判断在给定时间点是否已过期
func (v *Voucher) IsExpired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
