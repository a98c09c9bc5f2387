package controller

import (
	"school_quiz_backend/internal/service"
	"school_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService     *service.QuizService
	QuestionService *service.QuestionService
}

func NewQuizController(quizService *service.QuizService, questionService *service.QuestionService) *QuizController {
	return &QuizController{QuizService: quizService, QuestionService: questionService}
}

// GetDailyPaper godoc
// @Summary 获取今日试卷
// @Description 返回当天指定等级的题目（不含答案）及限时
// @Tags 每日测验
// @Produce json
// @Security ApiKeyAuth
// @Param level query int true "等级"
// @Success 200 {object} util.Response{data=service.DailyPaper}
// @Failure 400 {object} util.Response
// @Router /quiz/daily [get]
func (c *QuizController) GetDailyPaper(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	level := util.ParseIntDefault(ctx.Query("level"), 0)

	paper, err := c.QuestionService.DailyPaper(ctx.Request.Context(), claims.UserID, level)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, paper)
}

// SubmitAttempt godoc
// @Summary 提交今日测验
// @Description 每个学生每天只能提交一次
// @Tags 每日测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitAttemptRequest true "成绩"
// @Success 201 {object} util.Response{data=model.QuizAttempt}
// @Failure 400 {object} util.Response "参数错误"
// @Failure 409 {object} util.Response "今日已提交"
// @Router /quiz/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.QuizService.SubmitAttempt(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// GetResult godoc
// @Summary 查询成绩与排名
// @Description 公布时刻之前只返回公布时刻；之后返回分数、排名、奖励档位和代金券
// @Tags 每日测验
// @Produce json
// @Security ApiKeyAuth
// @Param day query string false "日期 YYYY-MM-DD，默认今天"
// @Success 200 {object} util.Response{data=service.ResultView}
// @Failure 400 {object} util.Response
// @Router /quiz/result [get]
func (c *QuizController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	result, err := c.QuizService.GetResult(ctx.Request.Context(), claims.UserID, ctx.Query("day"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetHistory godoc
// @Summary 我的测验记录
// @Tags 每日测验
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "条数"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /quiz/attempts [get]
func (c *QuizController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	attempts, err := c.QuizService.History(ctx.Request.Context(), claims.UserID, util.ParseIntDefault(ctx.Query("limit"), 30))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GetLeaderboard godoc
// @Summary 当日排行榜
// @Tags 每日测验
// @Produce json
// @Security ApiKeyAuth
// @Param day query string false "日期 YYYY-MM-DD"
// @Param limit query int false "前 N 名，最大 100"
// @Success 200 {object} util.Response{data=service.LeaderboardView}
// @Router /quiz/leaderboard [get]
func (c *QuizController) GetLeaderboard(ctx *gin.Context) {
	board, err := c.QuizService.Leaderboard(ctx.Request.Context(), ctx.Query("day"), util.ParseIntDefault(ctx.Query("limit"), 10))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// WipeAttempts godoc
// @Summary 清除测验记录
// @Description 管理员批量删除提交记录，不传 day 时清空全部
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param day query string false "日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=object}
// @Router /admin/attempts [delete]
func (c *QuizController) WipeAttempts(ctx *gin.Context) {
	deleted, err := c.QuizService.WipeAttempts(ctx.Request.Context(), ctx.Query("day"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": deleted})
}
