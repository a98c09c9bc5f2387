package service

import (
	"context"
	"school_quiz_backend/internal/model"
	"time"
)

// 以下接口由 repository 包中的 gorm 实现满足

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.User, error)
	List(ctx context.Context, filter UserFilter) ([]model.User, int64, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type SchoolStore interface {
	Create(ctx context.Context, school *model.School) error
	Update(ctx context.Context, school *model.School) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.School, error)
	List(ctx context.Context, city, search string, page, limit int) ([]model.School, int64, error)
}

type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	ListByLevel(ctx context.Context, level int, enabledOnly bool) ([]model.Question, error)
}

type AttemptStore interface {
	// Create 同一学生同一天重复提交时返回 util.ErrAttemptExists
	Create(ctx context.Context, attempt *model.QuizAttempt) error
	FindByUserAndDate(ctx context.Context, userID uint, day string) (*model.QuizAttempt, error)
	// ListByDate 按分数降序、用时升序、主键升序返回当天全部提交
	ListByDate(ctx context.Context, day string) ([]model.QuizAttempt, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]model.QuizAttempt, error)
	// DeleteByDate day 为空时清空全部
	DeleteByDate(ctx context.Context, day string) (int64, error)
}

type VoucherStore interface {
	// Create 同一次提交重复发券时返回 util.ErrConflict 类错误
	Create(ctx context.Context, v *model.Voucher) error
	FindByAttempt(ctx context.Context, attemptID uint) (*model.Voucher, error)
	FindByCode(ctx context.Context, code string) (*model.Voucher, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Voucher, error)
	// MarkRedeemed 仅当券仍为 active 时更新并扣减商品库存
	MarkRedeemed(ctx context.Context, voucherID, productID uint, at time.Time) error
	MarkExpired(ctx context.Context, voucherID uint) error
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, enabledOnly bool) ([]model.Product, error)
}

// UserFilter 定义用户筛选条件
type UserFilter struct {
	Role     model.UserRole
	SchoolID *uint
	Search   string
	Disabled *bool
	Page     int
	Limit    int
}
