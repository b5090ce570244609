package user

import (
	"strconv"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
)

// --- Redis 键名常量 ---

const (
	// HandlesKey 是一个 Redis Hash 的键，用于缓存 handle -> 用户ID 的映射。
	// Field: 用户的handle
	// Value: 十进制的用户ID
	HandlesKey = "user:handles"
)

// cachedHandleID 从Redis缓存中查询一个handle对应的用户ID。
// 缓存不可用或未命中时返回 (0, false)，调用方应回退到SQLite。
func cachedHandleID(handle string) (uint, bool) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return 0, false
	}
	val, err := database.RDB.HGet(database.Ctx, HandlesKey, handle).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// cacheHandleID 把一个handle到ID的映射写入Redis缓存，尽力而为。
func cacheHandleID(handle string, id uint) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return
	}
	_ = database.RDB.HSet(database.Ctx, HandlesKey, handle, strconv.FormatUint(uint64(id), 10)).Err()
}
