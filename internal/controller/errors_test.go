package controller

import (
	"edu_quiz_backend/internal/util"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestRespondEngineError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"scope不存在", util.ErrScopeNotFound, http.StatusNotFound},
		{"作答会话不存在", util.ErrAttemptNotFound, http.StatusNotFound},
		{"补救会话不存在", util.ErrRemediationNotFound, http.StatusNotFound},
		{"练习会话不存在", util.ErrSessionNotFound, http.StatusNotFound},
		{"数据库记录不存在", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"非当前题", util.ErrQuestionMismatch, http.StatusConflict},
		{"作答已完成", util.ErrAttemptAlreadyCompleted, http.StatusConflict},
		{"补救已完成", util.ErrRemediationAlreadyCompleted, http.StatusConflict},
		{"题库为空", util.ErrEmptyRepository, http.StatusUnprocessableEntity},
		{"题目无正确选项", util.ErrNoCorrectOption, http.StatusUnprocessableEntity},
		{"越权访问", util.ErrPermissionDenied, http.StatusForbidden},
		{"未知错误", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondEngineError(ctx, c.err)

			if w.Code != c.want {
				t.Errorf("status = %d, want %d", w.Code, c.want)
			}
		})
	}
}
