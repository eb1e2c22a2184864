// Package guardrails validates chat input before any matching happens.
// Checks run in a fixed order and the first failure wins; a rejected
// message never reaches the rule matcher or the AI fallback.
package guardrails

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Reason identifies which check rejected a message.
type Reason string

const (
	ReasonEmpty            Reason = "empty"
	ReasonInvalidInput     Reason = "invalid_input"
	ReasonTooLong          Reason = "too_long"
	ReasonBlockedContent   Reason = "blocked_content"
	ReasonSpam             Reason = "spam"
	ReasonPersonalQuestion Reason = "personal_question"
	ReasonOffTopic         Reason = "off_topic"
	ReasonPersonalInfo     Reason = "personal_info"
)

// Outcome is the result of running a message through the filter. When
// Allowed, Message holds the cleaned (trimmed) input; when rejected it
// holds the user-facing explanation for the failed check.
type Outcome struct {
	Allowed bool
	Message string
	Reason  Reason
}

// Messages are the canned user-facing replies per rejection reason.
type Messages struct {
	Empty            string
	TooShort         string
	TooLong          string
	NoText           string
	Spam             string
	BlockedContent   string
	PersonalQuestion string
	OffTopic         string
	Privacy          string
}

// Config drives the filter. Keyword lists are matched case-insensitively.
type Config struct {
	MinLength                int
	MaxLength                int
	BlockedWords             []string
	PersonalQuestionKeywords []string
	OffTopicKeywords         []string
	CollegeKeywords          []string
	Messages                 Messages
}

// Spam heuristics thresholds.
const (
	repeatedCharLimit = 6  // six identical characters in a row
	allCapsMinLength  = 10 // shorter shouting is tolerated
	punctuationLimit  = 10 // more than this many !?., marks
)

var (
	hasLetter   = regexp.MustCompile(`[a-zA-Z]`)
	punctMarks  = regexp.MustCompile(`[!?.,]`)
	phoneNumber = regexp.MustCompile(`\b[6-9]\d{9}\b`)
	emailAddr   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	idNumber    = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	cardNumber  = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)

	// Question shapes that probe someone's personal life even without a
	// keyword hit.
	personalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`what is .+ (phone|number|address|salary)`),
		regexp.MustCompile(`where does .+ live`),
		regexp.MustCompile(`how old is`),
		regexp.MustCompile(`is .+ (married|single|dating)`),
		regexp.MustCompile(`tell me about .+ personal`),
	}
)

// Filter runs the ordered guardrail checks. It has no side effects beyond
// classification.
type Filter struct {
	cfg     Config
	blocked []*regexp.Regexp
}

// NewFilter precompiles the word-boundary patterns for the blocked list.
func NewFilter(cfg Config) *Filter {
	if cfg.MinLength <= 0 {
		cfg.MinLength = 2
	}
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = 500
	}

	blocked := make([]*regexp.Regexp, 0, len(cfg.BlockedWords))
	for _, word := range cfg.BlockedWords {
		blocked = append(blocked, regexp.MustCompile(fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(strings.ToLower(word)))))
	}

	return &Filter{cfg: cfg, blocked: blocked}
}

// Check classifies a raw message. Rules run in order; the first failure
// wins. Blocked-content runs before the spam and topic heuristics so an
// abusive message is always reported as blocked, whatever else it trips.
func (f *Filter) Check(raw string) Outcome {
	cleaned := strings.TrimSpace(raw)
	msgs := f.cfg.Messages

	if cleaned == "" {
		return rejected(ReasonEmpty, msgs.Empty)
	}
	if len(cleaned) < f.cfg.MinLength {
		return rejected(ReasonInvalidInput, msgs.TooShort)
	}
	if len(cleaned) > f.cfg.MaxLength {
		return rejected(ReasonTooLong, msgs.TooLong)
	}
	if !hasLetter.MatchString(cleaned) {
		return rejected(ReasonInvalidInput, msgs.NoText)
	}
	if f.containsBlockedWord(cleaned) {
		return rejected(ReasonBlockedContent, msgs.BlockedContent)
	}
	if isSpam(cleaned) {
		return rejected(ReasonSpam, msgs.Spam)
	}
	if f.isPersonalQuestion(cleaned) {
		return rejected(ReasonPersonalQuestion, msgs.PersonalQuestion)
	}
	if f.isOffTopic(cleaned) {
		return rejected(ReasonOffTopic, msgs.OffTopic)
	}
	if containsPersonalInfo(cleaned) {
		return rejected(ReasonPersonalInfo, msgs.Privacy)
	}

	return Outcome{Allowed: true, Message: cleaned}
}

func rejected(reason Reason, message string) Outcome {
	return Outcome{Allowed: false, Reason: reason, Message: message}
}

func (f *Filter) containsBlockedWord(message string) bool {
	lower := strings.ToLower(message)
	for _, pattern := range f.blocked {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// isSpam flags repeated-character runs, sustained shouting and
// punctuation floods.
func isSpam(message string) bool {
	if hasRepeatedRun(message, repeatedCharLimit) {
		return true
	}
	if len(message) > allCapsMinLength && isAllUpper(message) {
		return true
	}
	if len(punctMarks.FindAllString(message, -1)) > punctuationLimit {
		return true
	}
	return false
}

// hasRepeatedRun reports whether any character repeats limit or more
// times consecutively. Done by hand since RE2 has no backreferences.
func hasRepeatedRun(message string, limit int) bool {
	var prev rune
	run := 0
	for _, r := range message {
		if r == prev {
			run++
			if run >= limit {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// isAllUpper mirrors the "shouting" check: every cased character is
// uppercase and at least one letter is present.
func isAllUpper(message string) bool {
	hasCased := false
	for _, r := range message {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

func (f *Filter) isPersonalQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range f.cfg.PersonalQuestionKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	for _, pattern := range personalPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// isOffTopic rejects only when an off-topic keyword is present and no
// college keyword rescues the message ("politics class syllabus" stays in).
func (f *Filter) isOffTopic(message string) bool {
	lower := strings.ToLower(message)
	offTopic := false
	for _, keyword := range f.cfg.OffTopicKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			offTopic = true
			break
		}
	}
	if !offTopic {
		return false
	}
	for _, keyword := range f.cfg.CollegeKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return false
		}
	}
	return true
}

// containsPersonalInfo detects phone numbers, email addresses, 12-digit
// ID numbers and card-like digit groups.
func containsPersonalInfo(message string) bool {
	return phoneNumber.MatchString(message) ||
		emailAddr.MatchString(message) ||
		idNumber.MatchString(message) ||
		cardNumber.MatchString(message)
}
