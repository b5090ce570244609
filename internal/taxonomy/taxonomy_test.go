package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected Level
	}{
		{"remember", LevelRemember},
		{"Remember", LevelRemember},
		{"  UNDERSTAND  ", LevelUnderstand},
		{"Apply", LevelApply},
		{"analyze", LevelAnalyze},
		{"Evaluate", LevelEvaluate},
		{"CREATE", LevelCreate},
	}

	for _, tc := range testCases {
		level, err := Normalize(tc.input)
		require.NoError(t, err, "input: %q", tc.input)
		assert.Equal(t, tc.expected, level)
	}
}

func TestNormalizeRejectsUnknownLevels(t *testing.T) {
	for _, input := range []string{"", "  ", "synthesis", "remembering", "apply2"} {
		_, err := Normalize(input)
		assert.Error(t, err, "input: %q", input)
	}
}

func TestAllLevelsOrder(t *testing.T) {
	require.Len(t, AllLevels, 6)
	assert.Equal(t, LevelRemember, AllLevels[0])
	assert.Equal(t, LevelCreate, AllLevels[5])
}
