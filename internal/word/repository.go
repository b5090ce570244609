package word

import (
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
)

// --- Redis 键名常量 ---

const (
	// ApprovedKey 是一个 Redis Hash 的键，用于缓存已批准的词到层级的映射。
	// Field: 词 (区分大小写，与SQLite中保存的一致)
	// Value: 已批准的层级标签
	// 这个缓存只做正向命中加速，未命中时必须回源SQLite。
	ApprovedKey = "word:approved"
)

// CachedApprovedLevel 从Redis缓存中查询一个词已批准的层级。
// 缓存不可用或未命中时返回 ("", false)，调用方应回退到SQLite。
func CachedApprovedLevel(w string) (string, bool) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return "", false
	}
	level, err := database.RDB.HGet(database.Ctx, ApprovedKey, w).Result()
	if err != nil || level == "" {
		return "", false
	}
	return level, true
}

// CacheApproved 把一个新批准的(word, level)写入Redis缓存，尽力而为。
// 写入失败只影响后续查询的速度，不影响正确性。
func CacheApproved(w, level string) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return
	}
	_ = database.RDB.HSet(database.Ctx, ApprovedKey, w, level).Err()
}
