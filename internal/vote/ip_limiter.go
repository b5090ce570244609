package vote

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// ipVoteKeyPrefix 是Redis中有序集合的键名前缀
	ipVoteKeyPrefix = "ip_votes:"
	// ipVoteWindow 定义了IP投票计数的时间窗口
	ipVoteWindow = 24 * time.Hour
	// ipVoteTTL 是每个IP记录在Redis中的生存时间，比窗口稍长以作缓冲
	ipVoteTTL = 25 * time.Hour
)

// generateUniqueID 根据给定的时间生成一个16字节的、抗冲突的ID，并将其编码为Base64字符串。
// 结构: [ 8字节纳秒时间戳 (Big Endian) | 8字节随机数 ]
func generateUniqueID(t time.Time) (string, error) {
	b := make([]byte, 16)

	// 1. 写入8字节的纳秒时间戳
	binary.BigEndian.PutUint64(b[0:8], uint64(t.UnixNano()))

	// 2. 写入8字节的随机数
	if _, err := rand.Read(b[8:16]); err != nil {
		return "", err
	}

	// 3. 使用URL安全的Base64编码，没有padding，更紧凑
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// allowIPVote 检查一个IP在当前窗口内是否还允许投票，并登记本次投票。
// Redis不可用时直接放行：限流是保护措施，不应阻断核心投票路径。
func allowIPVote(ip string, limit int) bool {
	if limit <= 0 {
		return true
	}
	if database.RDB == nil || !database.IsRedisHealthy() {
		return true
	}

	now := time.Now()
	key := ipVoteKeyPrefix + ip
	windowBegin := now.Add(-ipVoteWindow)

	// 1. 清理窗口外的旧记录并统计当前票数
	pipe := database.RDB.Pipeline()
	pipe.ZRemRangeByScore(database.Ctx, key, "0", strconv.FormatInt(windowBegin.UnixNano(), 10))
	countCmd := pipe.ZCard(database.Ctx, key)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("警告: IP限流检查失败，本次放行: %v\n", err)
		return true
	}

	if countCmd.Val() >= int64(limit) {
		return false
	}

	// 2. 登记本次投票
	member, err := generateUniqueID(now)
	if err != nil {
		return true
	}
	pipe = database.RDB.Pipeline()
	pipe.ZAdd(database.Ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(database.Ctx, key, ipVoteTTL)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("警告: IP限流登记失败: %v\n", err)
	}
	return true
}

// IPRateLimitMiddleware 返回一个Gin中间件，对投票端点做按IP的窗口限流
func IPRateLimitMiddleware(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowIPVote(c.ClientIP(), limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "投票过于频繁，请稍后再试"})
			return
		}
		c.Next()
	}
}
