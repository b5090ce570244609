package question

import (
	"time"
)

// Entry 定义了完整问题预测的审计日志模型。
// 这张表只追加：核心流程从不更新或删除其中的记录，
// 只有报表模块会对它做聚合读取。
type Entry struct {
	ID uint `gorm:"primarykey"`

	// QuestionText 是用户提交的完整问题原文
	QuestionText string `gorm:"not null;type:text"`

	// PredictedLevel 是模型当时预测的布鲁姆层级
	PredictedLevel string `gorm:"not null;type:varchar(32);index"`

	CreatedAt time.Time
}

// TableName 指定表名，沿用最初部署时的命名
func (Entry) TableName() string {
	return "questions"
}
