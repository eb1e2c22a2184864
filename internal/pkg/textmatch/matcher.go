package textmatch

import (
	"math/rand"

	"github.com/campushelp/helpdesk/internal/app/models"
)

// Score weighting. Keyword overlap dominates because pattern keywords are
// short and deliberate; raw string similarity catches close paraphrases.
// A message covering every keyword of a pattern is a confident match even
// when the surrounding words differ, hence the coverage floor.
const (
	stringWeight      = 0.4
	keywordWeight     = 0.6
	fullCoverageScore = 0.85
)

// Match is the winning knowledge-base entry for a message.
type Match struct {
	Intent *models.Intent
	Score  float64
}

// Response picks one of the winning entry's responses uniformly at random.
func (m Match) Response() string {
	responses := m.Intent.Responses
	if len(responses) == 1 {
		return responses[0]
	}
	return responses[rand.Intn(len(responses))]
}

// Matcher scores messages against a fixed set of knowledge-base intents.
// Entry selection is deterministic: scoring has no randomness and ties are
// broken by knowledge-base order (first entry wins).
type Matcher struct {
	intents   []models.Intent
	threshold float64
}

// NewMatcher creates a matcher over the given intents. A match is only
// reported when the best score reaches threshold.
func NewMatcher(intents []models.Intent, threshold float64) *Matcher {
	return &Matcher{
		intents:   intents,
		threshold: threshold,
	}
}

// Match scores the message against every pattern of every intent and
// returns the best entry if it clears the threshold.
func (m *Matcher) Match(message string) (Match, bool) {
	query := Normalize(message)
	queryKeywords := KeywordSet(message)

	best := Match{}
	for i := range m.intents {
		intent := &m.intents[i]
		for _, pattern := range intent.Patterns {
			score := PatternScore(query, queryKeywords, pattern)
			// strict > keeps the first entry on ties
			if score > best.Score {
				best = Match{Intent: intent, Score: score}
			}
		}
	}

	if best.Intent == nil || best.Score < m.threshold || len(best.Intent.Responses) == 0 {
		return Match{Score: best.Score}, false
	}
	return best, true
}

// PatternScore computes the combined similarity between an already
// normalized query (with its keyword set) and a single raw pattern.
func PatternScore(query string, queryKeywords map[string]struct{}, pattern string) float64 {
	stringSim := StringSimilarity(query, Normalize(pattern))

	patternKeywords := Keywords(pattern)
	matched := 0
	for _, keyword := range patternKeywords {
		if _, ok := queryKeywords[keyword]; ok {
			matched++
		}
	}

	var keywordSim float64
	if len(patternKeywords) > 0 {
		keywordSim = float64(matched) / float64(len(patternKeywords))
	}

	score := stringSim*stringWeight + keywordSim*keywordWeight
	if len(patternKeywords) > 0 && matched == len(patternKeywords) && score < fullCoverageScore {
		score = fullCoverageScore
	}
	return score
}
