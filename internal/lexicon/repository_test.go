package lexicon

import (
	"strings"
	"testing"

	"github.com/bloomlab/bloom-indicator-backend/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `verb,bloom_level
define,remember
list , remember
explain,Understand
  summarize,understand
solve,apply
compare,analyze
justify,evaluate
design,create

 ,remember
invent,
fly,transcend
`

func loadSample(t *testing.T) {
	t.Helper()
	repo, err := loadFromCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	globalRepository = repo
	t.Cleanup(func() { globalRepository = nil })
}

func TestVerbsForEveryLoadedLevel(t *testing.T) {
	loadSample(t)

	for _, level := range taxonomy.AllLevels {
		verbs := VerbsFor(string(level))
		assert.NotEmpty(t, verbs, "level %s", level)
	}
}

func TestVerbsForTrimsAndIsCaseInsensitive(t *testing.T) {
	loadSample(t)

	assert.ElementsMatch(t, []string{"define", "list"}, VerbsFor("Remember"))
	assert.ElementsMatch(t, []string{"explain", "summarize"}, VerbsFor("UNDERSTAND"))
}

func TestVerbsForUnknownLevelReturnsEmpty(t *testing.T) {
	loadSample(t)

	assert.Empty(t, VerbsFor("transcend"))
	assert.Empty(t, VerbsFor(""))
}

func TestEmptyAndMalformedRowsAreDropped(t *testing.T) {
	loadSample(t)

	// 8条有效记录: 空动词、空层级和未知层级的行都被丢弃
	assert.Equal(t, 8, RowCount())
}

func TestVerbsForWithoutInitialization(t *testing.T) {
	globalRepository = nil
	assert.Empty(t, VerbsFor("remember"))
	assert.Zero(t, RowCount())
}
