package controller

import (
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	Service *service.PracticeService
}

func NewPracticeController(svc *service.PracticeService) *PracticeController {
	return &PracticeController{Service: svc}
}

// @Summary 开始自由练习
// @Description 无成绩压力的开放练习，可按难度过滤；scope 内无匹配难度时回退到全量题
// @Tags 自由练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.StartPracticeRequest true "练习范围与难度"
// @Success 201 {object} util.Response
// @Router /api/practice [post]
func (c *PracticeController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartPracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Start(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary 提交练习题答案
// @Description 每道实例题只能作答一次，重复提交返回 409
// @Tags 自由练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "练习会话 ID"
// @Param body body service.AnswerPracticeRequest true "作答信息"
// @Success 200 {object} util.Response
// @Router /api/practice/{sessionId}/answer [post]
func (c *PracticeController) Answer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerPracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Answer(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"), req)
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 追加一道练习题
// @Description 优先下发未出过的题，题库出尽后按顺序循环复用
// @Tags 自由练习
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "练习会话 ID"
// @Success 200 {object} util.Response
// @Router /api/practice/{sessionId}/more [post]
func (c *PracticeController) GenerateMore(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.GenerateMore(ctx.Request.Context(), user.UserID, ctx.Param("sessionId"))
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"question": view})
}

// @Summary 删除练习会话
// @Tags 自由练习
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "练习会话 ID"
// @Success 200 {object} util.Response
// @Router /api/practice/{sessionId} [delete]
func (c *PracticeController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), user.UserID, ctx.Param("sessionId")); err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("sessionId")})
}
