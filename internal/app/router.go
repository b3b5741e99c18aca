package app

import (
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/middleware"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 测验作答
	rg.POST("/quizzes/:quizId/attempts", c.quiz.StartQuiz)
	rg.GET("/attempts/:attemptId/current", c.quiz.GetCurrentQuestion)
	rg.POST("/attempts/:attemptId/answer", c.quiz.AnswerQuestion)
	rg.GET("/attempts/:attemptId/summary", c.quiz.GetQuizSummary)
	rg.DELETE("/attempts/:attemptId", c.quiz.DeleteAttempt)

	// 补救练习
	rg.POST("/remediations", c.remediation.Begin)
	rg.POST("/remediations/:remediationId/answer", c.remediation.Submit)
	rg.DELETE("/remediations/:remediationId", c.remediation.Delete)

	// 自由练习
	rg.POST("/practice", c.practice.Start)
	rg.POST("/practice/:sessionId/answer", c.practice.Answer)
	rg.POST("/practice/:sessionId/more", c.practice.GenerateMore)
	rg.DELETE("/practice/:sessionId", c.practice.Delete)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	questions := rg.Group("/questions")
	questions.Use(middleware.RoleMiddleware(model.Teacher))
	{
		questions.POST("", c.question.Create)
		questions.GET("", c.question.List)
		questions.GET("/:id", c.question.Get)
		questions.PUT("/:id", c.question.Update)
		questions.DELETE("/:id", c.question.Delete)
	}
}
