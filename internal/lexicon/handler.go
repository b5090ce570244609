package lexicon

import (
	"net/http"

	"github.com/bloomlab/bloom-indicator-backend/internal/taxonomy"
	"github.com/gin-gonic/gin"
)

// GetLevels 返回六个布鲁姆层级，按认知复杂度排序
func GetLevels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"levels": taxonomy.AllLevels})
}

// GetVerbsByLevel 返回指定层级下的全部示例动词
func GetVerbsByLevel(c *gin.Context) {
	levelName := c.Param("level")
	if !taxonomy.IsValid(levelName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的布鲁姆层级: " + levelName})
		return
	}
	level, _ := taxonomy.Normalize(levelName)
	c.JSON(http.StatusOK, gin.H{
		"level": level,
		"verbs": VerbsFor(levelName),
	})
}
