package controller

import (
	"school_quiz_backend/internal/model"
	"school_quiz_backend/internal/service"
	"school_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 学生名册管理
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// schoolScope 教师只能管理本校学生，管理员不受限
func schoolScope(claims *util.Claims) *uint {
	if claims.Role == model.Admin {
		return nil
	}
	// 未绑定学校的教师匹配不到任何学生
	if claims.SchoolID == nil {
		none := uint(0)
		return &none
	}
	return claims.SchoolID
}

// ListStudents godoc
// @Summary 学生列表
// @Description 教师只能看到本校学生
// @Tags 用户管理
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页条数" default(20)
// @Param schoolId query int false "学校ID（仅管理员）"
// @Param search query string false "姓名或邮箱"
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.User}}
// @Router /admin/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	filter := service.UserFilter{
		Role:   model.Student,
		Search: ctx.Query("search"),
		Page:   util.ParseIntDefault(ctx.Query("page"), 1),
		Limit:  util.ParseIntDefault(ctx.Query("limit"), 20),
	}
	if scope := schoolScope(claims); scope != nil {
		filter.SchoolID = scope
	} else if raw := ctx.Query("schoolId"); raw != "" {
		id := util.MustParseUint(raw)
		filter.SchoolID = &id
	}
	users, total, err := c.UserService.ListUsers(ctx.Request.Context(), filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// CreateStudent godoc
// @Summary 创建账号
// @Description 教师只能创建本校学生；未填密码时返回临时密码
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateUserRequest true "账号信息"
// @Success 201 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /admin/students [post]
func (c *UserController) CreateStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if scope := schoolScope(claims); scope != nil {
		req.SchoolID = scope
	}

	user, tempPassword, err := c.UserService.CreateUser(ctx.Request.Context(), claims.Role, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	resp := gin.H{"user": user}
	if tempPassword != "" {
		resp["tempPassword"] = tempPassword
	}
	util.Created(ctx, resp)
}

// UpdateStudent godoc
// @Summary 修改学生资料
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Param body body service.UpdateUserRequest true "资料"
// @Success 200 {object} util.Response{data=model.User}
// @Router /admin/students/{id} [put]
func (c *UserController) UpdateStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	scope := schoolScope(claims)
	if scope != nil {
		// 教师不能把学生转到其他学校
		req.SchoolID = nil
	}

	user, err := c.UserService.UpdateUser(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), scope, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ResetPassword godoc
// @Summary 重置学生密码
// @Tags 用户管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=object}
// @Router /admin/students/{id}/reset-password [post]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	tempPassword, err := c.UserService.ResetPassword(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), schoolScope(claims))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"tempPassword": tempPassword})
}
