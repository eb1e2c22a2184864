// Package textmatch scores chat messages against knowledge-base patterns.
// Matching combines string similarity with keyword overlap so that both
// near-verbatim phrasings ("what are the fees") and reworded ones ("how
// much do I pay") land on the right intent.
package textmatch

import (
	"regexp"
	"strings"

	"github.com/xrash/smetrics"
)

// stopWords are dropped before keyword comparison. Pattern keywords carry
// the intent; words here carry none.
var stopWords = map[string]struct{}{
	"i": {}, "me": {}, "my": {}, "we": {}, "our": {}, "you": {}, "your": {},
	"he": {}, "she": {}, "it": {},
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "can": {}, "may": {},
	"might": {}, "must": {}, "shall": {}, "to": {}, "of": {}, "in": {},
	"for": {}, "on": {}, "with": {}, "at": {}, "by": {}, "from": {}, "as": {},
	"into": {}, "through": {},
	"and": {}, "but": {}, "or": {}, "so": {}, "if": {}, "then": {}, "than": {},
	"when": {}, "where": {}, "what": {}, "which": {}, "who": {}, "whom": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"am": {}, "about": {}, "please": {}, "tell": {}, "know": {}, "want": {},
	"need": {}, "like": {}, "get": {}, "give": {}, "make": {}, "how": {},
	"there": {}, "here": {}, "just": {}, "also": {}, "show": {},
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Normalize lowercases the text, strips punctuation and collapses
// whitespace runs into single spaces.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = punctuation.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Keywords returns the normalized tokens of text minus stop words.
func Keywords(text string) []string {
	words := strings.Fields(Normalize(text))
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if _, skip := stopWords[word]; !skip {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// KeywordSet returns Keywords as a set for membership checks.
func KeywordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range Keywords(text) {
		set[word] = struct{}{}
	}
	return set
}

// StringSimilarity measures how close two normalized strings are, in [0,1].
// Jaro-Winkler with the customary boost parameters.
func StringSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	return smetrics.JaroWinkler(a, b, 0.7, 4)
}
