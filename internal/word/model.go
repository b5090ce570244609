package word

import (
	"time"
)

// Record 定义了单个(word, suggested_level)建议在SQLite中的持久化模型。
// 同一个词可以在不同层级下拥有相互独立的记录，各自累积票数、彼此竞争；
// 唯一键因此落在(word, suggested_level)组合上。记录一旦创建就不会被删除。
type Record struct {
	// ID 是记录的数字主键，作为投票去重的外键
	ID uint `gorm:"primarykey"`

	// Word 是社区建议的词，保存时保留原始大小写
	Word string `gorm:"uniqueIndex:idx_word_level;not null;type:varchar(255)"`

	// SuggestedLevel 是建议归属的布鲁姆层级，统一保存为小写标准标签
	SuggestedLevel string `gorm:"uniqueIndex:idx_word_level;not null;type:varchar(32)"`

	// VoteCount 是该记录累积的有效票数
	VoteCount int `gorm:"not null;default:0"`

	// Approved 标记该记录是否已达到票数阈值。
	// 批准是单向跃迁：一旦为true，后续投票只增加票数，不会回退。
	Approved bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名，沿用最初部署时的命名
func (Record) TableName() string {
	return "bloom_words"
}
