package models

import "fmt"

// StudentProfile identifies the class a student belongs to. It lives on the
// client and is sent along with each chat message; there is no server-side
// identity behind it.
type StudentProfile struct {
	Dept     string `json:"dept"`
	DeptName string `json:"deptName,omitempty"`
	Semester string `json:"semester"`
	Section  string `json:"section"`
}

// IsSet reports whether the profile carries enough information to
// personalize answers. The department is the minimum.
func (p *StudentProfile) IsSet() bool {
	return p != nil && p.Dept != ""
}

// TimetableKey builds the dept_sem_section key used by AdminData.Timetables.
func (p *StudentProfile) TimetableKey() string {
	return fmt.Sprintf("%s_%s_%s", p.Dept, p.Semester, p.Section)
}

// DisplayName prefers the human-readable department name when present.
func (p *StudentProfile) DisplayName() string {
	if p.DeptName != "" {
		return p.DeptName
	}
	return p.Dept
}
