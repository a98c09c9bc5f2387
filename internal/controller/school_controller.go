package controller

import (
	"school_quiz_backend/internal/service"
	"school_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SchoolController struct {
	SchoolService *service.SchoolService
}

func NewSchoolController(schoolService *service.SchoolService) *SchoolController {
	return &SchoolController{SchoolService: schoolService}
}

// ListSchools godoc
// @Summary 学校列表
// @Tags 学校管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Param city query string false "城市"
// @Param search query string false "名称或编码"
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.School}}
// @Router /admin/schools [get]
func (c *SchoolController) ListSchools(ctx *gin.Context) {
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)

	schools, total, err := c.SchoolService.List(ctx.Request.Context(), ctx.Query("city"), ctx.Query("search"), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: schools, Total: total, Page: page, Limit: limit})
}

// GetSchool godoc
// @Summary 学校详情
// @Tags 学校管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学校ID"
// @Success 200 {object} util.Response{data=model.School}
// @Failure 404 {object} util.Response
// @Router /admin/schools/{id} [get]
func (c *SchoolController) GetSchool(ctx *gin.Context) {
	school, err := c.SchoolService.Get(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, school)
}

// CreateSchool godoc
// @Summary 新增学校
// @Tags 学校管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SchoolRequest true "学校"
// @Success 201 {object} util.Response{data=model.School}
// @Failure 409 {object} util.Response "编码已存在"
// @Router /admin/schools [post]
func (c *SchoolController) CreateSchool(ctx *gin.Context) {
	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, school)
}

// UpdateSchool godoc
// @Summary 修改学校
// @Tags 学校管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "学校ID"
// @Param body body service.SchoolRequest true "学校"
// @Success 200 {object} util.Response{data=model.School}
// @Router /admin/schools/{id} [put]
func (c *SchoolController) UpdateSchool(ctx *gin.Context) {
	var req service.SchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.Update(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, school)
}

// DeleteSchool godoc
// @Summary 删除学校
// @Tags 学校管理
// @Security ApiKeyAuth
// @Param id path int true "学校ID"
// @Success 200 {object} util.Response
// @Router /admin/schools/{id} [delete]
func (c *SchoolController) DeleteSchool(ctx *gin.Context) {
	if err := c.SchoolService.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
