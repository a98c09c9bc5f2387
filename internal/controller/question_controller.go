package controller

import (
	"school_quiz_backend/internal/service"
	"school_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// ListQuestions godoc
// @Summary 题库列表
// @Tags 题库管理
// @Produce json
// @Security ApiKeyAuth
// @Param level query int true "等级"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	level := util.ParseIntDefault(ctx.Query("level"), 0)
	if level < 1 {
		util.BadRequest(ctx, "level is required")
		return
	}

	questions, err := c.QuestionService.ListByLevel(ctx.Request.Context(), level)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// CreateQuestion godoc
// @Summary 录入题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "题目"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Create(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 修改题目
// @Tags 题库管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param body body service.QuestionRequest true "题目"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Update(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 题库管理
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
