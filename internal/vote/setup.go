package vote

import (
	"fmt"

	"github.com/bloomlab/bloom-indicator-backend/internal/platform/database"
)

// PrimeDB 负责初始化vote模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("无法迁移vote_records表: %w", err)
	}
	fmt.Println("Vote数据库表迁移成功。")
	return nil
}
