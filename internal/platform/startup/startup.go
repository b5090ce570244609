package startup

import (
	"fmt"

	"github.com/bloomlab/bloom-indicator-backend/internal/lexicon"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/config"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
	"github.com/bloomlab/bloom-indicator-backend/internal/platform/metadata"
	"github.com/bloomlab/bloom-indicator-backend/internal/question"
	"github.com/bloomlab/bloom-indicator-backend/internal/user"
	"github.com/bloomlab/bloom-indicator-backend/internal/vote"
	"github.com/bloomlab/bloom-indicator-backend/internal/word"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 显式的迁移/预热步骤在共识引擎构造之前完成一次，
// 引擎本身不再做任何隐式的建表操作。
func InitializeApplication(cfg *config.Config) error {
	fmt.Println("开始应用首次初始化...")

	// 1. 迁移四张核心表 (users / bloom_words / vote_records / questions) 和元数据表
	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := word.PrimeCachedDB(); err != nil {
		return err
	}
	if err := vote.PrimeDB(); err != nil {
		return err
	}
	if err := question.PrimeDB(); err != nil {
		return err
	}

	// 2. 加载只读的动词词表，并记录词表指纹
	if err := lexicon.InitializeRepository(cfg.Resources.LexiconPath); err != nil {
		return err
	}
	if err := metadata.SetLexiconRowCount(database.DB, lexicon.RowCount()); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数。
// 在健康检查器发现Redis重启后被调用。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := user.WarmupCache(); err != nil {
		return err
	}
	if err := word.WarmupCache(); err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
