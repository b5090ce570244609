package report

import (
	"fmt"

	"github.com/bloomlab/bloom-indicator-backend/internal/question"
	"github.com/bloomlab/bloom-indicator-backend/internal/taxonomy"
	"github.com/bloomlab/bloom-indicator-backend/internal/user"
	"github.com/bloomlab/bloom-indicator-backend/internal/vote"
	"github.com/bloomlab/bloom-indicator-backend/internal/word"
	"gorm.io/gorm"
)

// TopWordDTO 是报表中单个热门词条的数据
type TopWordDTO struct {
	Word      string `json:"word"`
	Level     string `json:"level"`
	VoteCount int    `json:"vote_count"`
	Approved  bool   `json:"approved"`
}

// SummaryDTO 是报表API返回给控制器的最终数据包
type SummaryDTO struct {
	TotalQuestions    int64            `json:"total_questions"`
	QuestionsPerLevel map[string]int64 `json:"questions_per_level"`
	TotalWords        int64            `json:"total_words"`
	ApprovedWords     int64            `json:"approved_words"`
	TotalVotes        int64            `json:"total_votes"`
	TotalUsers        int64            `json:"total_users"`
	TopWords          []TopWordDTO     `json:"top_words"`
}

// topWordsLimit 限制报表中热门词条的数量
const topWordsLimit = 10

// BuildSummary 对问题日志、词库、投票和用户表做聚合统计。
// 这是问题日志唯一的读取方：核心流程对它只追加。
func BuildSummary(db *gorm.DB) (*SummaryDTO, error) {
	summary := &SummaryDTO{
		QuestionsPerLevel: make(map[string]int64, len(taxonomy.AllLevels)),
	}

	// 1. 问题日志总量与按层级分布
	if err := db.Model(&question.Entry{}).Count(&summary.TotalQuestions).Error; err != nil {
		return nil, fmt.Errorf("无法统计问题日志: %w", err)
	}

	type levelCount struct {
		PredictedLevel string
		Count          int64
	}
	var perLevel []levelCount
	err := db.Model(&question.Entry{}).
		Select("predicted_level, count(*) as count").
		Group("predicted_level").
		Scan(&perLevel).Error
	if err != nil {
		return nil, fmt.Errorf("无法按层级统计问题日志: %w", err)
	}
	// 六个层级全部出现在报表里，没有问题的层级计为0
	for _, l := range taxonomy.AllLevels {
		summary.QuestionsPerLevel[string(l)] = 0
	}
	for _, lc := range perLevel {
		summary.QuestionsPerLevel[lc.PredictedLevel] = lc.Count
	}

	// 2. 词库与投票总量
	if err := db.Model(&word.Record{}).Count(&summary.TotalWords).Error; err != nil {
		return nil, fmt.Errorf("无法统计词库: %w", err)
	}
	if err := db.Model(&word.Record{}).Where("approved = ?", true).Count(&summary.ApprovedWords).Error; err != nil {
		return nil, fmt.Errorf("无法统计已批准词条: %w", err)
	}
	if err := db.Model(&vote.Record{}).Count(&summary.TotalVotes).Error; err != nil {
		return nil, fmt.Errorf("无法统计投票记录: %w", err)
	}
	if err := db.Model(&user.User{}).Count(&summary.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("无法统计用户: %w", err)
	}

	// 3. 按票数取热门词条
	var topRecords []word.Record
	err = db.Model(&word.Record{}).
		Order("vote_count DESC, id ASC").
		Limit(topWordsLimit).
		Find(&topRecords).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询热门词条: %w", err)
	}
	summary.TopWords = make([]TopWordDTO, 0, len(topRecords))
	for _, rec := range topRecords {
		summary.TopWords = append(summary.TopWords, TopWordDTO{
			Word:      rec.Word,
			Level:     rec.SuggestedLevel,
			VoteCount: rec.VoteCount,
			Approved:  rec.Approved,
		})
	}

	return summary, nil
}
