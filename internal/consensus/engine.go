package consensus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bloomlab/bloom-indicator-backend/internal/classifier"
	"github.com/bloomlab/bloom-indicator-backend/internal/question"
	"github.com/bloomlab/bloom-indicator-backend/internal/taxonomy"
	"github.com/bloomlab/bloom-indicator-backend/internal/user"
	"github.com/bloomlab/bloom-indicator-backend/internal/vote"
	"github.com/bloomlab/bloom-indicator-backend/internal/word"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultApprovalThreshold 是(word, level)记录晋升为“已批准”所需的默认票数
const DefaultApprovalThreshold = 10

// Engine 是贯穿词库、投票、用户与问题日志四个存储的唯一业务编排者。
// 数据库句柄在构造时显式注入，每个逻辑操作都在自己的事务范围内完成；
// 除了持久化存储之外，引擎在两次调用之间不保留任何状态。
type Engine struct {
	db        *gorm.DB
	model     classifier.Classifier
	threshold int
	useCache  bool
}

// NewEngine 创建一个共识引擎。
// threshold 小于等于0时使用默认阈值；useCache 控制是否启用Redis旁路缓存
// (测试环境和Redis降级时为false，引擎全部回源SQLite)。
func NewEngine(db *gorm.DB, model classifier.Classifier, threshold int, useCache bool) *Engine {
	if threshold <= 0 {
		threshold = DefaultApprovalThreshold
	}
	return &Engine{
		db:        db,
		model:     model,
		threshold: threshold,
		useCache:  useCache,
	}
}

// ResolveWord 查询一个词的布鲁姆层级。
// 已批准的社区答案具有权威性，直接返回并完全绕过模型；
// 没有已批准记录时才调用模型，返回仅供参考的建议。
// 这是只读路径：不写问题日志，也不产生任何其他副作用。
func (e *Engine) ResolveWord(wordText string) (*WordResolution, error) {
	w := strings.TrimSpace(wordText)
	if w == "" {
		return nil, ErrEmptyInput
	}

	// 1. 缓存快路径：已批准的词直接命中
	if e.useCache {
		if level, ok := word.CachedApprovedLevel(w); ok {
			return &WordResolution{Kind: ResolutionApproved, Word: w, Level: level}, nil
		}
	}

	// 2. 回源SQLite查找已批准的记录 (词的匹配区分大小写)
	var rec word.Record
	err := e.db.Where("word = ? AND approved = ?", w, true).
		Order("vote_count DESC").First(&rec).Error
	if err == nil {
		if e.useCache {
			word.CacheApproved(w, rec.SuggestedLevel)
		}
		return &WordResolution{Kind: ResolutionApproved, Word: w, Level: rec.SuggestedLevel}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("无法查询词库: %w", err)
	}

	// 3. 没有权威答案，退回模型推理
	predicted, err := e.model.Classify(w)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifier.ErrUnavailable, err)
	}
	return &WordResolution{Kind: ResolutionAdvisory, Word: w, Level: predicted}, nil
}

// ResolveQuestion 对一个完整问题做层级预测，并把结果追加到问题日志。
// 完整问题不走词库旁路：社区投票只针对单个词，不针对问题。
func (e *Engine) ResolveQuestion(text string) (string, error) {
	q := strings.TrimSpace(text)
	if q == "" {
		return "", ErrEmptyInput
	}

	predicted, err := e.model.Classify(q)
	if err != nil {
		return "", fmt.Errorf("%w: %v", classifier.ErrUnavailable, err)
	}

	entry := question.Entry{
		QuestionText:   q,
		PredictedLevel: predicted,
	}
	if err := e.db.Create(&entry).Error; err != nil {
		return "", fmt.Errorf("无法写入问题日志: %w", err)
	}

	return predicted, nil
}

// SubmitVote 为一个(word, level)组合登记一票。
// 从查重到计票的整个序列在单个事务中完成，保证并发提交不会双重计票；
// (user, word_record)上的唯一性就是重试安全的幂等键。
func (e *Engine) SubmitVote(wordText, levelName string, userID uint) (*VoteOutcome, error) {
	// 1. 投票必须有已识别的用户
	if userID == 0 {
		return nil, ErrMissingUser
	}

	w := strings.TrimSpace(wordText)
	if w == "" {
		return nil, ErrEmptyInput
	}
	level, err := taxonomy.Normalize(levelName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, levelName)
	}

	var outcome *VoteOutcome
	err = e.db.Transaction(func(tx *gorm.DB) error {
		// 2. 查找或创建词条记录，并锁定该行防止并发更新
		var rec word.Record
		created := false
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("word = ? AND suggested_level = ?", w, string(level)).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = word.Record{Word: w, SuggestedLevel: string(level)}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("无法创建词条记录: %w", err)
			}
			created = true
		} else if err != nil {
			return fmt.Errorf("无法查询词条记录: %w", err)
		}

		// 3. 查重：同一个用户对同一条记录只能投一票
		var existing int64
		if err := tx.Model(&vote.Record{}).
			Where("user_id = ? AND word_record_id = ?", userID, rec.ID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("无法查询投票记录: %w", err)
		}
		if existing > 0 {
			return ErrDuplicateVote
		}

		// 4. 写入投票记录；唯一索引兜底并发窗口内的重复提交
		newVote := vote.Record{UserID: userID, WordRecordID: rec.ID}
		if err := tx.Create(&newVote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVote
			}
			return fmt.Errorf("无法写入投票记录: %w", err)
		}

		// 5. 计票并判定批准跃迁。批准是单向的：已批准的记录继续累积票数，
		// 但不会因为任何后续计算回退为未批准。
		wasApproved := rec.Approved
		rec.VoteCount++
		if rec.VoteCount >= e.threshold {
			rec.Approved = true
		}
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("无法更新词条记录: %w", err)
		}

		switch {
		case created:
			outcome = &VoteOutcome{Kind: VoteCreated, Word: w, Level: string(level), VoteCount: rec.VoteCount}
		case !wasApproved && rec.Approved:
			// 阈值恰好在本次调用被跨越，一次性的批准通知
			outcome = &VoteOutcome{Kind: VoteApproved, Word: w, Level: string(level), VoteCount: rec.VoteCount}
		default:
			outcome = &VoteOutcome{Kind: VoteRecorded, Word: w, Level: string(level), VoteCount: rec.VoteCount}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. 事务提交成功后，把新批准的词回填到缓存
	if e.useCache && outcome.Kind == VoteApproved {
		word.CacheApproved(w, string(level))
	}

	return outcome, nil
}

// GetOrCreateUser 返回一个handle对应的稳定用户ID，必要时创建新用户。
func (e *Engine) GetOrCreateUser(handle string) (uint, error) {
	id, err := user.GetOrCreate(e.db, handle)
	if err != nil {
		if errors.Is(err, user.ErrEmptyHandle) {
			return 0, ErrMissingUser
		}
		return 0, err
	}
	return id, nil
}
