package router

import (
	"github.com/focuslog/internal/config"
	"github.com/focuslog/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, gdb *gorm.DB) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件：保存当前用户与活动展示日期
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("focuslog_session", store))

	api := handler.NewAPI(gdb)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.POST("/api/session/login", api.Login)
	r.POST("/api/session/logout", api.Logout)

	// 需要会话身份的接口
	auth := r.Group("/api")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/planner/date", api.GetActiveDate)
		auth.PUT("/planner/date", api.SetActiveDate)

		auth.GET("/todos", api.ListTodos)
		auth.POST("/todos", api.CreateTodo)
		auth.PATCH("/todos/:id", api.UpdateTodo)
		auth.DELETE("/todos/:id", api.DeleteTodo)
		auth.POST("/todos/:id/move", api.MoveTodo)

		auth.GET("/study/today", api.GetTodayStudy)
		auth.POST("/study/flush", api.FlushStudy)

		auth.GET("/goals/ongoing", api.GetOngoingGoal)
		auth.POST("/goals", api.CreateGoal)
		auth.POST("/goals/abandon", api.AbandonGoal)
		auth.PATCH("/goals/:id/retrospective", api.SetGoalRetrospective)

		auth.GET("/stats/daily", api.GetDailyStats)
		auth.GET("/stats/categories", api.GetCategoryStats)
		auth.GET("/stats/goals", api.GetGoalHistory)

		auth.POST("/clear", api.ClearDay)
	}

	return r
}
