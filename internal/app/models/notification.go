package models

// TargetAll is the wildcard value for notification target fields.
const TargetAll = "all"

// Notification priorities.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// NotificationTarget scopes a notification. Each field is either a literal
// value or the wildcard "all".
type NotificationTarget struct {
	Dept     string `json:"dept"`
	Semester string `json:"semester"`
	Section  string `json:"section"`
}

// Matches reports whether the target covers the given profile. Matching is
// exact string equality per field, case-sensitive as stored, with "all" as
// wildcard. A nil profile only matches all-wildcard targets.
func (t NotificationTarget) Matches(profile *StudentProfile) bool {
	var dept, semester, section string
	if profile != nil {
		dept, semester, section = profile.Dept, profile.Semester, profile.Section
	}
	if t.Dept != TargetAll && t.Dept != dept {
		return false
	}
	if t.Semester != TargetAll && t.Semester != semester {
		return false
	}
	if t.Section != TargetAll && t.Section != section {
		return false
	}
	return true
}

// Notification is an admin-posted announcement. Once posted it is immutable
// except for deletion, which happens through a whole-document admin save.
type Notification struct {
	ID       string             `json:"id,omitempty"`
	Title    string             `json:"title"`
	Message  string             `json:"message"`
	Type     string             `json:"type"`
	Priority string             `json:"priority"`
	Date     string             `json:"date"`
	Target   NotificationTarget `json:"target"`
}
