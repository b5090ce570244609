package api

import (
	"github.com/bloomlab/bloom-indicator-backend/internal/consensus"
	"github.com/bloomlab/bloom-indicator-backend/internal/lexicon"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/config"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/health"
	"github.com/bloomlab/bloom-indicator-backend/internal/report"
	"github.com/bloomlab/bloom-indicator-backend/internal/vote"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, handler *consensus.Handler, cfg *config.Config) {
	api := router.Group("/api")
	{
		// 词相关的路由组 /api/words
		wordRoutes := api.Group("/words")
		{
			wordRoutes.GET("/check", handler.CheckWord)
			wordRoutes.POST("/vote", vote.IPRateLimitMiddleware(cfg.Vote.IPDailyLimit), handler.SubmitVote)
		}

		// 完整问题预测 /api/questions
		api.POST("/questions/predict", handler.PredictQuestion)

		// 用户注册 /api/users
		api.POST("/users", handler.CreateUser)

		// 布鲁姆层级浏览 /api/levels
		levelRoutes := api.Group("/levels")
		{
			levelRoutes.GET("", lexicon.GetLevels)
			levelRoutes.GET("/:level/verbs", lexicon.GetVerbsByLevel)
		}

		// 报表与健康检查
		api.GET("/report", report.GetReport)
		api.GET("/health", health.GetHealth)
	}
}
