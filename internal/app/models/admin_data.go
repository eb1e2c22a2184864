package models

// Department is one entry of the department dropdown.
type Department struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PeriodTiming describes when one period of the day runs.
type PeriodTiming struct {
	Period int    `json:"period"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// Room is one entry of the room directory, keyed by room number.
type Room struct {
	Floor    string `json:"floor"`
	Wing     string `json:"wing"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
}

// FacultyMember is one faculty entry under a department.
type FacultyMember struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Cabin   string `json:"cabin"`
}

// UpcomingExam is a dated exam announcement, optionally targeted at a
// department ("all" for everyone).
type UpcomingExam struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Target string `json:"target,omitempty"`
}

// ExamSchedule holds the term-level exam windows plus upcoming exams.
type ExamSchedule struct {
	InternalExams     string         `json:"internal_exams,omitempty"`
	OddSemesterExams  string         `json:"odd_semester_exams,omitempty"`
	EvenSemesterExams string         `json:"even_semester_exams,omitempty"`
	Upcoming          []UpcomingExam `json:"upcoming,omitempty"`
}

// CustomSection is an admin-defined keyword-to-content block. Any query
// containing one of its keywords is answered with the section content.
type CustomSection struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Content  string   `json:"content"`
}

// Timetable maps a weekday name to the ordered list of classes for that day.
type Timetable map[string][]string

// AdminData is the whole admin-managed document. It is persisted as a single
// JSON file and replaced wholesale on every admin save; concurrent saves are
// last-write-wins.
type AdminData struct {
	Departments    []Department               `json:"departments"`
	Semesters      []string                   `json:"semesters"`
	Sections       []string                   `json:"sections"`
	Timetables     map[string]Timetable       `json:"timetables,omitempty"`
	PeriodTimings  []PeriodTiming             `json:"period_timings,omitempty"`
	RoomDirectory  map[string]Room            `json:"room_directory,omitempty"`
	Faculty        map[string][]FacultyMember `json:"faculty,omitempty"`
	ExamSchedule   *ExamSchedule              `json:"exam_schedule,omitempty"`
	Notifications  []Notification             `json:"notifications"`
	FeeStructure   map[string]string          `json:"fee_structure,omitempty"`
	ContactInfo    map[string]string          `json:"contact_info,omitempty"`
	CustomSections []CustomSection            `json:"custom_sections,omitempty"`
	LastUpdated    string                     `json:"last_updated,omitempty"`
}
