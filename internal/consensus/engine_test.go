package consensus

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/bloomlab/bloom-indicator-backend/internal/classifier"
	"github.com/bloomlab/bloom-indicator-backend/internal/question"
	"github.com/bloomlab/bloom-indicator-backend/internal/user"
	"github.com/bloomlab/bloom-indicator-backend/internal/vote"
	"github.com/bloomlab/bloom-indicator-backend/internal/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubClassifier 是测试用的固定输出分类器
type stubClassifier struct {
	level string
	err   error
	calls int
}

func (s *stubClassifier) Classify(text string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.level, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &word.Record{}, &vote.Record{}, &question.Entry{}))
	return db
}

func newTestEngine(t *testing.T, threshold int) (*Engine, *stubClassifier) {
	t.Helper()
	model := &stubClassifier{level: "apply"}
	return NewEngine(newTestDB(t), model, threshold, false), model
}

func mustUserID(t *testing.T, e *Engine, handle string) uint {
	t.Helper()
	id, err := e.GetOrCreateUser(handle)
	require.NoError(t, err)
	return id
}

func loadRecord(t *testing.T, e *Engine, w, level string) word.Record {
	t.Helper()
	var rec word.Record
	require.NoError(t, e.db.Where("word = ? AND suggested_level = ?", w, level).First(&rec).Error)
	return rec
}

func TestFirstVoteCreatesRecord(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	uid := mustUserID(t, e, "alice")

	outcome, err := e.SubmitVote("design", "create", uid)
	require.NoError(t, err)
	assert.Equal(t, VoteCreated, outcome.Kind)
	assert.Equal(t, 1, outcome.VoteCount)

	rec := loadRecord(t, e, "design", "create")
	assert.Equal(t, 1, rec.VoteCount)
	assert.False(t, rec.Approved)
}

func TestDuplicateVoteIsIdempotentlyRejected(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	uid := mustUserID(t, e, "alice")

	_, err := e.SubmitVote("design", "create", uid)
	require.NoError(t, err)

	_, err = e.SubmitVote("design", "create", uid)
	assert.ErrorIs(t, err, ErrDuplicateVote)

	// 原有投票保持不变，无任何状态修改
	rec := loadRecord(t, e, "design", "create")
	assert.Equal(t, 1, rec.VoteCount)

	var votes int64
	require.NoError(t, e.db.Model(&vote.Record{}).Count(&votes).Error)
	assert.EqualValues(t, 1, votes)
}

func TestThresholdLaw(t *testing.T) {
	e, _ := newTestEngine(t, 10)

	// 前9个不同用户投票: 票数累积，未批准，恰好第1票返回CREATED
	for i := 1; i <= 9; i++ {
		uid := mustUserID(t, e, fmt.Sprintf("u%d", i))
		outcome, err := e.SubmitVote("design", "create", uid)
		require.NoError(t, err)
		if i == 1 {
			assert.Equal(t, VoteCreated, outcome.Kind)
		} else {
			assert.Equal(t, VoteRecorded, outcome.Kind)
		}
	}

	rec := loadRecord(t, e, "design", "create")
	assert.Equal(t, 9, rec.VoteCount)
	assert.False(t, rec.Approved)

	// 第10个用户跨越阈值: 一次性的APPROVED通知
	outcome, err := e.SubmitVote("design", "create", mustUserID(t, e, "u10"))
	require.NoError(t, err)
	assert.Equal(t, VoteApproved, outcome.Kind)
	assert.Equal(t, 10, outcome.VoteCount)

	rec = loadRecord(t, e, "design", "create")
	assert.True(t, rec.Approved)

	// 第11票之后继续计票，但不再出现APPROVED
	outcome, err = e.SubmitVote("design", "create", mustUserID(t, e, "u11"))
	require.NoError(t, err)
	assert.Equal(t, VoteRecorded, outcome.Kind)
	assert.Equal(t, 11, outcome.VoteCount)

	rec = loadRecord(t, e, "design", "create")
	assert.True(t, rec.Approved, "批准是单向跃迁")

	// 第一个用户重复投票: 信息性拒绝，票数不变
	_, err = e.SubmitVote("design", "create", mustUserID(t, e, "u1"))
	assert.ErrorIs(t, err, ErrDuplicateVote)
	rec = loadRecord(t, e, "design", "create")
	assert.Equal(t, 11, rec.VoteCount)
}

func TestSubmitVoteRequiresUser(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	_, err := e.SubmitVote("design", "create", 0)
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestSubmitVoteValidatesInput(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	uid := mustUserID(t, e, "alice")

	_, err := e.SubmitVote("   ", "create", uid)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = e.SubmitVote("design", "transcend", uid)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestVoteLevelMatchingIsCaseInsensitive(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	uid := mustUserID(t, e, "alice")

	_, err := e.SubmitVote("design", "Create", uid)
	require.NoError(t, err)

	// 同一条记录: 大小写不同的层级名归一化后视为相同
	_, err = e.SubmitVote("design", "CREATE", uid)
	assert.ErrorIs(t, err, ErrDuplicateVote)

	// 层级统一保存为小写标准标签
	rec := loadRecord(t, e, "design", "create")
	assert.Equal(t, "create", rec.SuggestedLevel)
}

func TestCompetingClassificationsAreIndependent(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	uid := mustUserID(t, e, "alice")

	// 同一个词在不同层级下是相互独立的记录，同一用户可以各投一票
	outcome, err := e.SubmitVote("run", "apply", uid)
	require.NoError(t, err)
	assert.Equal(t, VoteCreated, outcome.Kind)

	outcome, err = e.SubmitVote("run", "analyze", uid)
	require.NoError(t, err)
	assert.Equal(t, VoteCreated, outcome.Kind)

	// 但对同一(word, level)对不能投第二票
	_, err = e.SubmitVote("run", "apply", uid)
	assert.ErrorIs(t, err, ErrDuplicateVote)

	assert.Equal(t, 1, loadRecord(t, e, "run", "apply").VoteCount)
	assert.Equal(t, 1, loadRecord(t, e, "run", "analyze").VoteCount)
}

func TestResolveWordApprovedOverridesModel(t *testing.T) {
	e, model := newTestEngine(t, 2)
	model.level = "remember" // 模型意见与社区共识相反

	_, err := e.SubmitVote("design", "create", mustUserID(t, e, "u1"))
	require.NoError(t, err)
	outcome, err := e.SubmitVote("design", "create", mustUserID(t, e, "u2"))
	require.NoError(t, err)
	require.Equal(t, VoteApproved, outcome.Kind)

	resolution, err := e.ResolveWord("design")
	require.NoError(t, err)
	assert.Equal(t, ResolutionApproved, resolution.Kind)
	assert.Equal(t, "create", resolution.Level)
	assert.Zero(t, model.calls, "已批准的答案必须完全绕过模型")
}

func TestResolveWordAdvisoryDelegatesToModel(t *testing.T) {
	e, model := newTestEngine(t, 10)
	model.level = "analyze"

	resolution, err := e.ResolveWord("  compare  ")
	require.NoError(t, err)
	assert.Equal(t, ResolutionAdvisory, resolution.Kind)
	assert.Equal(t, "compare", resolution.Word)
	assert.Equal(t, "analyze", resolution.Level)
	assert.Equal(t, 1, model.calls)
}

func TestResolveWordUnapprovedRecordDoesNotOverride(t *testing.T) {
	e, model := newTestEngine(t, 10)
	model.level = "understand"

	// 有记录但未达到阈值: 仍然是模型建议
	_, err := e.SubmitVote("explain", "create", mustUserID(t, e, "u1"))
	require.NoError(t, err)

	resolution, err := e.ResolveWord("explain")
	require.NoError(t, err)
	assert.Equal(t, ResolutionAdvisory, resolution.Kind)
	assert.Equal(t, "understand", resolution.Level)
}

func TestResolveWordEmptyInput(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	_, err := e.ResolveWord("   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestResolveWordClassifierUnavailable(t *testing.T) {
	e, model := newTestEngine(t, 10)
	model.err = classifier.ErrUnavailable

	_, err := e.ResolveWord("design")
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
}

func TestResolveQuestionAppendsAuditEntry(t *testing.T) {
	e, model := newTestEngine(t, 10)
	model.level = "evaluate"

	level, err := e.ResolveQuestion("Justify your choice of algorithm.")
	require.NoError(t, err)
	assert.Equal(t, "evaluate", level)

	var entries []question.Entry
	require.NoError(t, e.db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "Justify your choice of algorithm.", entries[0].QuestionText)
	assert.Equal(t, "evaluate", entries[0].PredictedLevel)
}

func TestResolveQuestionEmptyInputLogsNothing(t *testing.T) {
	e, _ := newTestEngine(t, 10)

	_, err := e.ResolveQuestion("   ")
	assert.ErrorIs(t, err, ErrEmptyInput)

	var count int64
	require.NoError(t, e.db.Model(&question.Entry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestResolveQuestionClassifierFailureLogsNothing(t *testing.T) {
	e, model := newTestEngine(t, 10)
	model.err = classifier.ErrUnavailable

	_, err := e.ResolveQuestion("Explain photosynthesis.")
	assert.ErrorIs(t, err, classifier.ErrUnavailable)

	var count int64
	require.NoError(t, e.db.Model(&question.Entry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestResolveWordNeverLogsQuestions(t *testing.T) {
	e, _ := newTestEngine(t, 10)

	_, err := e.ResolveWord("design")
	require.NoError(t, err)

	var count int64
	require.NoError(t, e.db.Model(&question.Entry{}).Count(&count).Error)
	assert.Zero(t, count, "查词是只读路径，不写问题日志")
}

func TestGetOrCreateUserIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, 10)

	first, err := e.GetOrCreateUser("alice")
	require.NoError(t, err)
	again, err := e.GetOrCreateUser("alice")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	other, err := e.GetOrCreateUser("bob")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	_, err = e.GetOrCreateUser("   ")
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestApprovalScenario(t *testing.T) {
	// 完整走一遍批准流程: u1..u9投票后票数9未批准; u10投票后批准;
	// u1重复投票被拒绝，票数保持10。
	e, _ := newTestEngine(t, 10)

	for i := 1; i <= 9; i++ {
		_, err := e.SubmitVote("design", "create", mustUserID(t, e, fmt.Sprintf("u%d", i)))
		require.NoError(t, err)
	}
	rec := loadRecord(t, e, "design", "create")
	assert.Equal(t, 9, rec.VoteCount)
	assert.False(t, rec.Approved)

	outcome, err := e.SubmitVote("design", "create", mustUserID(t, e, "u10"))
	require.NoError(t, err)
	assert.Equal(t, VoteApproved, outcome.Kind)

	rec = loadRecord(t, e, "design", "create")
	assert.Equal(t, 10, rec.VoteCount)
	assert.True(t, rec.Approved)

	_, err = e.SubmitVote("design", "create", mustUserID(t, e, "u1"))
	assert.ErrorIs(t, err, ErrDuplicateVote)
	rec = loadRecord(t, e, "design", "create")
	assert.Equal(t, 10, rec.VoteCount)
}
