package vote

import (
	"time"
)

// Record 定义了单次有效投票在SQLite中的持久化模型。
// (UserID, WordRecordID)上的唯一索引是幂等性的关键：
// 同一个用户对同一条词条记录只能投一票，重复提交在存储层被拒绝。
// 投票记录一旦写入就不可变更、不可删除。
type Record struct {
	ID uint `gorm:"primarykey"`

	// UserID 是投票用户的ID
	UserID uint `gorm:"uniqueIndex:idx_user_word_record;not null"`

	// WordRecordID 是被投票的(word, level)记录的ID
	WordRecordID uint `gorm:"uniqueIndex:idx_user_word_record;not null"`

	CreatedAt time.Time
}

// TableName 指定表名
func (Record) TableName() string {
	return "vote_records"
}
