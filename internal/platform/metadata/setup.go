package metadata

import (
	"fmt"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
)

// PrimeDB 负责初始化metadata模块的数据库部分，并写入当前的表结构版本
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("无法迁移metadata表: %w", err)
	}

	if err := SetValue(database.DB, SchemaVersionKey, CurrentSchemaVersion); err != nil {
		return fmt.Errorf("无法写入schema版本: %w", err)
	}

	fmt.Println("Metadata数据库表迁移成功。")
	return nil
}
