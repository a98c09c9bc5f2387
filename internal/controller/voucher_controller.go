package controller

import (
	"school_quiz_backend/internal/service"
	"school_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VoucherController struct {
	VoucherService *service.VoucherService
}

func NewVoucherController(voucherService *service.VoucherService) *VoucherController {
	return &VoucherController{VoucherService: voucherService}
}

// ListMine godoc
// @Summary 我的代金券
// @Tags 代金券
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Voucher}
// @Router /vouchers [get]
func (c *VoucherController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	vouchers, err := c.VoucherService.ListMine(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, vouchers)
}

// Redeem godoc
// @Summary 兑换代金券
// @Description 将有效代金券兑换为礼品，已兑换或已过期返回 409
// @Tags 代金券
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RedeemRequest true "券码与礼品"
// @Success 200 {object} util.Response{data=model.Voucher}
// @Failure 404 {object} util.Response "券或礼品不存在"
// @Failure 409 {object} util.Response "已兑换/已过期/库存不足"
// @Router /vouchers/redeem [post]
func (c *VoucherController) Redeem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	voucher, err := c.VoucherService.Redeem(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, voucher)
}
