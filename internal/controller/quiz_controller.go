package controller

import (
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizAttemptService
}

func NewQuizController(svc *service.QuizAttemptService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 开始测验
// @Description 按测验 scope 取题并创建作答会话，返回第一题
// @Tags 测验作答
// @Produce json
// @Security BearerAuth
// @Param quizId path string true "测验 scope ID"
// @Success 201 {object} util.Response
// @Router /api/quizzes/{quizId}/attempts [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.Start(ctx.Request.Context(), user.UserID, ctx.Param("quizId"))
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary 获取当前题目
// @Description 只读，重复调用不改变作答状态；已答完时 question 为 null
// @Tags 测验作答
// @Produce json
// @Security BearerAuth
// @Param attemptId path string true "作答会话 ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{attemptId}/current [get]
func (c *QuizController) GetCurrentQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.CurrentQuestion(ctx.Request.Context(), user.UserID, ctx.Param("attemptId"))
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 提交当前题答案
// @Description questionId 必须是当前题的实例 ID，否则返回 409
// @Tags 测验作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attemptId path string true "作答会话 ID"
// @Param body body service.AnswerQuizRequest true "作答信息"
// @Success 200 {object} util.Response
// @Router /api/attempts/{attemptId}/answer [post]
func (c *QuizController) AnswerQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Answer(ctx.Request.Context(), user.UserID, ctx.Param("attemptId"), req)
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 获取测验汇总
// @Description 已答完为完整汇总，中途调用返回已答部分的汇总
// @Tags 测验作答
// @Produce json
// @Security BearerAuth
// @Param attemptId path string true "作答会话 ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{attemptId}/summary [get]
func (c *QuizController) GetQuizSummary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.Summary(ctx.Request.Context(), user.UserID, ctx.Param("attemptId"))
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 删除作答会话
// @Description 显式清理，过期回收由存储层 TTL 负责
// @Tags 测验作答
// @Produce json
// @Security BearerAuth
// @Param attemptId path string true "作答会话 ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{attemptId} [delete]
func (c *QuizController) DeleteAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), user.UserID, ctx.Param("attemptId")); err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("attemptId")})
}
