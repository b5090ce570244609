package question

import (
	"fmt"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
)

// PrimeDB 负责初始化question模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("无法迁移questions表: %w", err)
	}
	fmt.Println("Question数据库表迁移成功。")
	return nil
}
