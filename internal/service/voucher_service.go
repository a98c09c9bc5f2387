package service

import (
	"context"
	"errors"
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/util"
	"school_quiz_backend/pkg/logger"
	"school_quiz_backend/pkg/monitoring"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RedeemRequest 兑换代金券
// swagger:model RedeemRequest
type RedeemRequest struct {
	VoucherCode string `json:"voucherCode" binding:"required"`
	ProductID   uint   `json:"productId" binding:"required"`
}

type VoucherService struct {
	Vouchers VoucherStore
	Products ProductStore
	Policy   RewardPolicy
	Now      func() time.Time
}

func NewVoucherService(vouchers VoucherStore, products ProductStore, policy RewardPolicy) *VoucherService {
	return &VoucherService{
		Vouchers: vouchers,
		Products: products,
		Policy:   policy,
		Now:      time.Now,
	}
}

// newVoucherCode 生成 16 位大写券码
func newVoucherCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:16])
}

// EnsureVoucher 为代金券档位的提交发券；已发过则直接返回原券
func (s *VoucherService) EnsureVoucher(ctx context.Context, attempt *model.QuizAttempt, rank int) (*model.Voucher, error) {
	existing, err := s.Vouchers.FindByAttempt(ctx, attempt.ID)
	if err == nil {
		return s.refreshState(ctx, existing), nil
	}
	if !errors.Is(err, util.ErrVoucherNotFound) {
		return nil, err
	}

	now := s.Now()
	voucher := &model.Voucher{
		Code:            newVoucherCode(),
		UserID:          attempt.UserID,
		AttemptID:       attempt.ID,
		QuizDate:        attempt.QuizDate,
		Rank:            rank,
		DiscountPercent: s.Policy.DiscountPercent,
		ExpiresAt:       now.AddDate(0, 0, s.Policy.VoucherValidityDays),
		State:           model.VoucherActive,
	}

	if err := s.Vouchers.Create(ctx, voucher); err != nil {
		// 并发请求已抢先发券
		if errors.Is(err, util.ErrConflict) {
			return s.Vouchers.FindByAttempt(ctx, attempt.ID)
		}
		return nil, err
	}

	monitoring.VouchersIssued.Inc()
	logger.Log.Info("voucher issued",
		zap.Uint("userID", voucher.UserID),
		zap.Uint("attemptID", voucher.AttemptID),
		zap.Int("rank", rank),
		zap.Time("expiresAt", voucher.ExpiresAt),
	)
	return voucher, nil
}

// refreshState 读取时发现已过期则顺带标记为 expired
func (s *VoucherService) refreshState(ctx context.Context, v *model.Voucher) *model.Voucher {
	if v.State == model.VoucherActive && v.IsExpired(s.Now()) {
		if err := s.Vouchers.MarkExpired(ctx, v.ID); err != nil {
			logger.Log.Warn("mark voucher expired failed", zap.Uint("voucherID", v.ID), zap.Error(err))
			return v
		}
		v.State = model.VoucherExpired
	}
	return v
}

// ListMine 学生自己的代金券
func (s *VoucherService) ListMine(ctx context.Context, userID uint) ([]model.Voucher, error) {
	vouchers, err := s.Vouchers.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range vouchers {
		s.refreshState(ctx, &vouchers[i])
	}
	return vouchers, nil
}

// Redeem 将有效代金券兑换为指定礼品
func (s *VoucherService) Redeem(ctx context.Context, userID uint, req RedeemRequest) (*model.Voucher, error) {
	code := strings.ToUpper(strings.TrimSpace(req.VoucherCode))
	if code == "" {
		return nil, util.Validationf("voucherCode is required")
	}
	if req.ProductID == 0 {
		return nil, util.Validationf("productId is required")
	}

	voucher, err := s.Vouchers.FindByCode(ctx, code)
	if err != nil {
		s.countRedemption(err)
		return nil, err
	}
	// 不暴露他人券码是否存在
	if voucher.UserID != userID {
		s.countRedemption(util.ErrVoucherNotFound)
		return nil, util.ErrVoucherNotFound
	}

	now := s.Now()
	switch voucher.State {
	case model.VoucherRedeemed:
		s.countRedemption(util.ErrVoucherAlreadyRedeemed)
		return nil, util.ErrVoucherAlreadyRedeemed
	case model.VoucherExpired:
		s.countRedemption(util.ErrVoucherExpired)
		return nil, util.ErrVoucherExpired
	}
	if voucher.IsExpired(now) {
		s.refreshState(ctx, voucher)
		s.countRedemption(util.ErrVoucherExpired)
		return nil, util.ErrVoucherExpired
	}

	product, err := s.Products.FindByID(ctx, req.ProductID)
	if err != nil {
		s.countRedemption(err)
		return nil, err
	}
	if !product.Enabled || product.Stock <= 0 {
		s.countRedemption(util.ErrProductUnavailable)
		return nil, util.ErrProductUnavailable
	}

	if err := s.Vouchers.MarkRedeemed(ctx, voucher.ID, product.ID, now); err != nil {
		s.countRedemption(err)
		return nil, err
	}

	voucher.State = model.VoucherRedeemed
	voucher.RedeemedAt = &now
	voucher.ProductID = &product.ID

	s.countRedemption(nil)
	logger.Log.Info("voucher redeemed",
		zap.Uint("userID", userID),
		zap.String("code", voucher.Code),
		zap.Uint("productID", product.ID),
	)
	return voucher, nil
}

func (s *VoucherService) countRedemption(err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, util.ErrNotFound):
		result = "not_found"
	case errors.Is(err, util.ErrConflict):
		result = "conflict"
	default:
		result = "error"
	}
	monitoring.VoucherRedemptions.WithLabelValues(result).Inc()
}

// ExpireOverdue 后台任务：将过期未兑换的券标记为 expired
func (s *VoucherService) ExpireOverdue(ctx context.Context) (int64, error) {
	n, err := s.Vouchers.ExpireBefore(ctx, s.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		monitoring.VouchersExpired.Add(float64(n))
		logger.Log.Info("vouchers expired", zap.Int64("count", n))
	}
	return n, nil
}
