package controller

import (
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RemediationController struct {
	Service *service.RemediationService
}

func NewRemediationController(svc *service.RemediationService) *RemediationController {
	return &RemediationController{Service: svc}
}

// @Summary 开始补救练习
// @Description 针对测验中答错的题创建掌握循环会话，返回第一道补救题
// @Tags 补救练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.BeginRemediationRequest true "补救目标"
// @Success 201 {object} util.Response
// @Router /api/remediations [post]
func (c *RemediationController) Begin(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.BeginRemediationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Begin(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Created(ctx, resp)
}

// @Summary 提交补救题答案
// @Description 答对累计进度，达到要求后会话完成；答错进度不变并下发下一题
// @Tags 补救练习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param remediationId path string true "补救会话 ID"
// @Param body body service.SubmitRemedialRequest true "作答信息"
// @Success 200 {object} util.Response
// @Router /api/remediations/{remediationId}/answer [post]
func (c *RemediationController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRemedialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Submit(ctx.Request.Context(), user.UserID, ctx.Param("remediationId"), req)
	if err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 删除补救会话
// @Tags 补救练习
// @Produce json
// @Security BearerAuth
// @Param remediationId path string true "补救会话 ID"
// @Success 200 {object} util.Response
// @Router /api/remediations/{remediationId} [delete]
func (c *RemediationController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), user.UserID, ctx.Param("remediationId")); err != nil {
		respondEngineError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": ctx.Param("remediationId")})
}
