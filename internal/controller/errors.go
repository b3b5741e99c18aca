package controller

import (
	"edu_quiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondEngineError 引擎错误到 HTTP 状态的统一映射：
// 资源不存在 404，客户端与服务端状态不同步 409，
// 题库内容配置问题 422，其余按内部错误处理
func respondEngineError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrScopeNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrRemediationNotFound),
		errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx, "记录不存在")
	case errors.Is(err, util.ErrQuestionMismatch),
		errors.Is(err, util.ErrAttemptAlreadyCompleted),
		errors.Is(err, util.ErrRemediationAlreadyCompleted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrEmptyRepository),
		errors.Is(err, util.ErrNoCorrectOption):
		util.UnprocessableEntity(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
