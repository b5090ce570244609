package report

import (
	"net/http"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// GetReport 处理 GET /api/report
// 返回问题日志与投票词库的聚合统计
func GetReport(c *gin.Context) {
	summary, err := BuildSummary(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成报表失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
