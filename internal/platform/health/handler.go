package health

import (
	"net/http"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// GetHealth 处理 GET /api/health
// Redis降级不影响核心服务，因此整体状态仍然报告为ok
func GetHealth(c *gin.Context) {
	redisStatus := "ok"
	if !database.IsRedisHealthy() {
		redisStatus = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"redis":  redisStatus,
	})
}
