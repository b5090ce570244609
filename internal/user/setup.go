package user

import (
	"fmt"
	"strconv"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	fmt.Println("User数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载所有已知的用户handle，并预热到Redis的Hash中
func WarmupCache() error {
	if database.RDB == nil {
		return nil
	}

	var users []User
	if err := database.DB.Select("id", "handle").Find(&users).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取用户列表: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("无现有用户数据，无需预热用户缓存。")
		return nil
	}

	// 使用Pipeline批量写入，先清空旧缓存以保证一致性
	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, HandlesKey)
	for _, u := range users {
		pipe.HSet(database.Ctx, HandlesKey, u.Handle, strconv.FormatUint(uint64(u.ID), 10))
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热用户缓存到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个用户到Redis。\n", len(users))
	return nil
}

// PrimeCachedDB 是user模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
