package word

import (
	"fmt"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("无法迁移bloom_words表: %w", err)
	}
	fmt.Println("Word数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载所有已批准的词，并预热到Redis的Hash中
func WarmupCache() error {
	if database.RDB == nil {
		return nil
	}

	var approved []Record
	if err := database.DB.Where("approved = ?", true).Select("word", "suggested_level").Find(&approved).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取已批准的词: %w", err)
	}

	if len(approved) == 0 {
		fmt.Println("无已批准的词，无需预热词表缓存。")
		return nil
	}

	// 使用Pipeline批量写入，先清空旧缓存以保证一致性
	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, ApprovedKey)
	for _, rec := range approved {
		pipe.HSet(database.Ctx, ApprovedKey, rec.Word, rec.SuggestedLevel)
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热已批准词到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个已批准的词到Redis。\n", len(approved))
	return nil
}

// PrimeCachedDB 是word模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
