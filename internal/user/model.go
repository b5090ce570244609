package user

import (
	"time"
)

// User 定义了用户在SQLite数据库中的持久化模型。
// Handle是未经认证的自由文本标识，首次出现时创建记录，之后不再变更或删除。
type User struct {
	// ID 是用户的稳定数字标识，作为投票记录的外键
	ID uint `gorm:"primarykey"`

	// Handle 是用户自报的唯一标识文本
	Handle string `gorm:"uniqueIndex;not null;type:varchar(255)"`

	CreatedAt time.Time
}
