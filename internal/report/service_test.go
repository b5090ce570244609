package report

import (
	"path/filepath"
	"testing"

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

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &word.Record{}, &vote.Record{}, &question.Entry{}))
	return db
}

func TestBuildSummaryOnEmptyDatabase(t *testing.T) {
	db := newTestDB(t)

	summary, err := BuildSummary(db)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalQuestions)
	assert.Zero(t, summary.TotalWords)
	assert.Zero(t, summary.TotalVotes)
	assert.Empty(t, summary.TopWords)
	// 六个层级都在，计数为0
	assert.Len(t, summary.QuestionsPerLevel, 6)
	assert.Zero(t, summary.QuestionsPerLevel["remember"])
}

func TestBuildSummaryAggregates(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&question.Entry{QuestionText: "q1", PredictedLevel: "apply"}).Error)
	require.NoError(t, db.Create(&question.Entry{QuestionText: "q2", PredictedLevel: "apply"}).Error)
	require.NoError(t, db.Create(&question.Entry{QuestionText: "q3", PredictedLevel: "create"}).Error)

	require.NoError(t, db.Create(&user.User{Handle: "alice"}).Error)
	require.NoError(t, db.Create(&word.Record{Word: "design", SuggestedLevel: "create", VoteCount: 10, Approved: true}).Error)
	require.NoError(t, db.Create(&word.Record{Word: "compare", SuggestedLevel: "analyze", VoteCount: 3}).Error)
	require.NoError(t, db.Create(&vote.Record{UserID: 1, WordRecordID: 1}).Error)

	summary, err := BuildSummary(db)
	require.NoError(t, err)

	assert.EqualValues(t, 3, summary.TotalQuestions)
	assert.EqualValues(t, 2, summary.QuestionsPerLevel["apply"])
	assert.EqualValues(t, 1, summary.QuestionsPerLevel["create"])
	assert.EqualValues(t, 0, summary.QuestionsPerLevel["remember"])
	assert.EqualValues(t, 2, summary.TotalWords)
	assert.EqualValues(t, 1, summary.ApprovedWords)
	assert.EqualValues(t, 1, summary.TotalVotes)
	assert.EqualValues(t, 1, summary.TotalUsers)

	require.Len(t, summary.TopWords, 2)
	assert.Equal(t, "design", summary.TopWords[0].Word)
	assert.True(t, summary.TopWords[0].Approved)
}
