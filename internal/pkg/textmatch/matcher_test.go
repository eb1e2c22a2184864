package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushelp/helpdesk/internal/app/models"
)

func testIntents() []models.Intent {
	return []models.Intent{
		{
			Tag:       "greeting",
			Patterns:  []string{"hi", "hello", "hey"},
			Responses: []string{"Hello! How can I help?"},
		},
		{
			Tag:       "fees",
			Patterns:  []string{"what are the fees", "fee structure", "how much is the tuition fee"},
			Responses: []string{"B.Tech is 85,000 per year.", "See the accounts office for the full fee structure."},
		},
		{
			Tag:       "library",
			Patterns:  []string{"library timings", "when is the library open"},
			Responses: []string{"The library is open 8 AM to 8 PM."},
		},
	}
}

func TestMatcher_ExactPattern(t *testing.T) {
	m := NewMatcher(testIntents(), 0.6)

	match, ok := m.Match("hi")
	require.True(t, ok)
	assert.Equal(t, "greeting", match.Intent.Tag)
	assert.GreaterOrEqual(t, match.Score, 0.6)
}

func TestMatcher_Paraphrase(t *testing.T) {
	m := NewMatcher(testIntents(), 0.6)

	// Every keyword of "library timings" appears, so the coverage floor
	// guarantees a confident score.
	match, ok := m.Match("please tell me the library timings for this week")
	require.True(t, ok)
	assert.Equal(t, "library", match.Intent.Tag)
	assert.GreaterOrEqual(t, match.Score, 0.85)
}

func TestMatcher_NoKeywordOverlapFails(t *testing.T) {
	m := NewMatcher(testIntents(), 0.6)

	// With zero keyword overlap the score is capped at the string weight,
	// which sits below the threshold.
	_, ok := m.Match("quantum entanglement research grants")
	assert.False(t, ok)
}

func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher(testIntents(), 0.6)

	first, ok := m.Match("what are the fees")
	require.True(t, ok)
	for i := 0; i < 20; i++ {
		match, ok := m.Match("what are the fees")
		require.True(t, ok)
		assert.Equal(t, first.Intent.Tag, match.Intent.Tag)
		assert.Equal(t, first.Score, match.Score)
	}
}

func TestMatcher_TieBreaksToFirstEntry(t *testing.T) {
	intents := []models.Intent{
		{Tag: "first", Patterns: []string{"library timings"}, Responses: []string{"a"}},
		{Tag: "second", Patterns: []string{"library timings"}, Responses: []string{"b"}},
	}
	m := NewMatcher(intents, 0.6)

	match, ok := m.Match("library timings")
	require.True(t, ok)
	assert.Equal(t, "first", match.Intent.Tag)
}

func TestMatcher_EmptyResponsesNeverWins(t *testing.T) {
	intents := []models.Intent{
		{Tag: "broken", Patterns: []string{"library timings"}, Responses: nil},
	}
	m := NewMatcher(intents, 0.6)

	_, ok := m.Match("library timings")
	assert.False(t, ok)
}

func TestMatch_ResponseComesFromWinningIntent(t *testing.T) {
	m := NewMatcher(testIntents(), 0.6)

	match, ok := m.Match("fee structure")
	require.True(t, ok)
	assert.Contains(t, match.Intent.Responses, match.Response())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "what are the fees", Normalize("  What ARE the fees?!  "))
	assert.Equal(t, "a b c", Normalize("a   b\t\tc"))
}

func TestKeywords_DropsStopWords(t *testing.T) {
	keywords := Keywords("what are the library timings")
	assert.Equal(t, []string{"library", "timings"}, keywords)
}

func TestStringSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, StringSimilarity("fee structure", "fee structure"))
	assert.Less(t, StringSimilarity("library timings", "hostel rooms"), 0.8)
	assert.Equal(t, 1.0, StringSimilarity("", ""))
}
