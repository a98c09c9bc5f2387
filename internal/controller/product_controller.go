package controller

import (
	"school_quiz_backend/internal/service"
	"school_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	ProductService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{ProductService: productService}
}

// ListProducts godoc
// @Summary 可兑换礼品列表
// @Tags 礼品
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Product}
// @Router /products [get]
func (c *ProductController) ListProducts(ctx *gin.Context) {
	products, err := c.ProductService.List(ctx.Request.Context(), true)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, products)
}

// ListAllProducts godoc
// @Summary 礼品管理列表（含下架）
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Product}
// @Router /admin/products [get]
func (c *ProductController) ListAllProducts(ctx *gin.Context) {
	products, err := c.ProductService.List(ctx.Request.Context(), false)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, products)
}

// CreateProduct godoc
// @Summary 新增礼品
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProductRequest true "礼品"
// @Success 201 {object} util.Response{data=model.Product}
// @Router /admin/products [post]
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req service.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	product, err := c.ProductService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, product)
}

// UpdateProduct godoc
// @Summary 修改礼品
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "礼品ID"
// @Param body body service.ProductRequest true "礼品"
// @Success 200 {object} util.Response{data=model.Product}
// @Router /admin/products/{id} [put]
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	var req service.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	product, err := c.ProductService.Update(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, product)
}

// DeleteProduct godoc
// @Summary 删除礼品
// @Tags 管理
// @Security ApiKeyAuth
// @Param id path int true "礼品ID"
// @Success 200 {object} util.Response
// @Router /admin/products/{id} [delete]
func (c *ProductController) DeleteProduct(ctx *gin.Context) {
	if err := c.ProductService.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadImage godoc
// @Summary 上传礼品图片
// @Tags 管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "礼品ID"
// @Param file formData file true "图片"
// @Success 200 {object} util.Response{data=model.Product}
// @Router /admin/products/{id}/image [post]
func (c *ProductController) UploadImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	contentType, err := util.SniffContentType(file, util.MimeImage)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	product, err := c.ProductService.UploadImage(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, product)
}
