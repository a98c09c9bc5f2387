package repository

import (
	"context"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type VoucherRepository struct {
	DB *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{DB: db}
}

func (r *VoucherRepository) Create(ctx context.Context, v *model.Voucher) error {
	return translate(r.DB.WithContext(ctx).Create(v).Error, nil, util.ErrVoucherIssued)
}

func (r *VoucherRepository) FindByAttempt(ctx context.Context, attemptID uint) (*model.Voucher, error) {
	var v model.Voucher
	if err := r.DB.WithContext(ctx).Where("attempt_id = ?", attemptID).First(&v).Error; err != nil {
		return nil, translate(err, util.ErrVoucherNotFound, nil)
	}
	return &v, nil
}

func (r *VoucherRepository) FindByCode(ctx context.Context, code string) (*model.Voucher, error) {
	var v model.Voucher
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&v).Error; err != nil {
		return nil, translate(err, util.ErrVoucherNotFound, nil)
	}
	return &v, nil
}

func (r *VoucherRepository) ListByUser(ctx context.Context, userID uint) ([]model.Voucher, error) {
	var vouchers []model.Voucher
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&vouchers).Error
	return vouchers, err
}

// MarkRedeemed 在同一事务中核销代金券并扣减库存，任一条件不满足则整体回滚
func (r *VoucherRepository) MarkRedeemed(ctx context.Context, voucherID, productID uint, at time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Voucher{}).
			Where("id = ? AND state = ? AND expires_at > ?", voucherID, model.VoucherActive, at).
			Updates(map[string]interface{}{
				"state":       model.VoucherRedeemed,
				"redeemed_at": at,
				"product_id":  productID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrVoucherAlreadyRedeemed
		}

		res = tx.Model(&model.Product{}).
			Where("id = ? AND enabled = ? AND stock > 0", productID, true).
			Update("stock", gorm.Expr("stock - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrProductUnavailable
		}
		return nil
	})
}

func (r *VoucherRepository) MarkExpired(ctx context.Context, voucherID uint) error {
	return r.DB.WithContext(ctx).Model(&model.Voucher{}).
		Where("id = ? AND state = ?", voucherID, model.VoucherActive).
		Update("state", model.VoucherExpired).Error
}

func (r *VoucherRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Voucher{}).
		Where("state = ? AND expires_at <= ?", model.VoucherActive, now).
		Update("state", model.VoucherExpired)
	return res.RowsAffected, res.Error
}
