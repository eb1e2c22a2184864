package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/pkg/textmatch"
)

// Keyword routes for the personalized intents. These are checked before
// the knowledge-base matcher because they answer from live admin data,
// not from static patterns.
var (
	roomKeywords         = []string{"room", "where", "location", "floor", "wing", "lab", "find"}
	todayKeywords        = []string{"today", "todays", "now", "current class"}
	classKeywords        = []string{"class", "classes", "timetable", "schedule"}
	timetableKeywords    = []string{"timetable", "schedule", "classes", "weekly"}
	notificationKeywords = []string{"notification", "notifications", "notice", "update", "updates", "announcement"}
	examKeywords         = []string{"exam", "exams", "examination", "test", "midterm", "final"}
	facultyKeywords      = []string{"faculty", "teacher", "professor", "prof", "staff", "cabin"}
)

var (
	threeDigits  = regexp.MustCompile(`\d{3}`)
	roomPatterns = []*regexp.Regexp{
		regexp.MustCompile(`room\s*(?:no\.?\s*)?(\d+)`),
		regexp.MustCompile(`(\d{3})`),
		regexp.MustCompile(`(lab\s*\d+)`),
	}
)

const profileRequiredMessage = "Please set your profile (Department, Semester, Section) to see your personalized timetable."

// personalizedAnswer routes the message to an admin-data-backed intent if
// its keywords fire. Returns false when no personalized intent applies
// and the knowledge-base matcher should take over.
func (s *ChatService) personalizedAnswer(message string, profile *models.StudentProfile) (string, bool) {
	data := s.adminRepo.Get()
	keywords := textmatch.KeywordSet(message)
	lower := strings.ToLower(message)

	if hasAnyKeyword(keywords, roomKeywords) || threeDigits.MatchString(lower) {
		if answer, ok := roomAnswer(data, lower); ok {
			return answer, true
		}
	}

	if containsAny(lower, todayKeywords) && hasAnyKeyword(keywords, classKeywords) {
		return todaysClassesAnswer(data, profile), true
	}

	if hasAnyKeyword(keywords, timetableKeywords) {
		if !profile.IsSet() {
			return profileRequiredMessage, true
		}
		return weeklyTimetableAnswer(data, profile), true
	}

	if hasAnyKeyword(keywords, notificationKeywords) {
		return s.notificationsAnswer(data, profile), true
	}

	if hasAnyKeyword(keywords, examKeywords) {
		if answer, ok := examScheduleAnswer(data, profile); ok {
			return answer, true
		}
	}

	if hasAnyKeyword(keywords, facultyKeywords) {
		if answer, ok := facultyAnswer(data, profile); ok {
			return answer, true
		}
	}

	if answer, ok := customSectionAnswer(data, keywords); ok {
		return answer, true
	}

	return "", false
}

// roomAnswer resolves a room query against the room directory. With a
// room number it answers with the room's details; with only generic room
// words it lists the directory.
func roomAnswer(data *models.AdminData, lowerQuery string) (string, bool) {
	if len(data.RoomDirectory) == 0 {
		return "", false
	}

	var roomNum string
	for _, pattern := range roomPatterns {
		if m := pattern.FindStringSubmatch(lowerQuery); m != nil {
			roomNum = m[1]
			break
		}
	}
	// an exact directory key inside the query beats the extracted number
	for key := range data.RoomDirectory {
		if strings.Contains(lowerQuery, strings.ToLower(key)) {
			roomNum = key
			break
		}
	}

	if roomNum == "" {
		if containsAny(lowerQuery, []string{"room", "where", "location", "building"}) {
			return roomDirectoryListing(data.RoomDirectory), true
		}
		return "", false
	}

	for key, room := range data.RoomDirectory {
		if strings.EqualFold(key, roomNum) {
			var b strings.Builder
			fmt.Fprintf(&b, "**Room %s**\n\n", key)
			fmt.Fprintf(&b, "- **Floor:** %s\n", room.Floor)
			fmt.Fprintf(&b, "- **Wing:** %s\n", room.Wing)
			fmt.Fprintf(&b, "- **Type:** %s\n", room.Type)
			fmt.Fprintf(&b, "- **Capacity:** %d students\n", room.Capacity)
			return b.String(), true
		}
	}

	return fmt.Sprintf("Room %s not found in directory. Please check with the admin office.", roomNum), true
}

func roomDirectoryListing(directory map[string]models.Room) string {
	keys := make([]string, 0, len(directory))
	for key := range directory {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if len(keys) > 10 {
		keys = keys[:10]
	}

	var b strings.Builder
	b.WriteString("**ROOM DIRECTORY:**\n\n")
	for _, key := range keys {
		room := directory[key]
		fmt.Fprintf(&b, "- **Room %s**: %s, %s (%s)\n", key, room.Floor, room.Wing, room.Type)
	}
	b.WriteString("\n...and more. Ask about a specific room number.")
	return b.String()
}

// todaysClassesAnswer lists the classes scheduled for the current weekday.
func todaysClassesAnswer(data *models.AdminData, profile *models.StudentProfile) string {
	if !profile.IsSet() {
		return "Please set your profile (dept/sem/section) to see today's classes."
	}

	schedule, ok := data.Timetables[profile.TimetableKey()]
	if !ok {
		return "No timetable found for your class."
	}

	today := time.Now().Weekday().String()
	classes, ok := schedule[today]
	if !ok {
		return fmt.Sprintf("No classes scheduled for today (%s).", today)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**TODAY'S CLASSES (%s)**\n", today)
	fmt.Fprintf(&b, "%s | Sem %s | Sec %s\n\n", profile.DisplayName(), profile.Semester, profile.Section)
	for i, class := range classes {
		fmt.Fprintf(&b, "- Period %d-%d: %s\n", i*2+1, i*2+2, class)
	}
	return b.String()
}

// weeklyTimetableAnswer renders the full weekly schedule with period
// timings for the profile's class.
func weeklyTimetableAnswer(data *models.AdminData, profile *models.StudentProfile) string {
	schedule, ok := data.Timetables[profile.TimetableKey()]
	if !ok {
		return fmt.Sprintf("No timetable found for %s Semester %s Section %s.\n\nPlease contact the admin to add your timetable.",
			profile.DisplayName(), profile.Semester, profile.Section)
	}

	var b strings.Builder
	b.WriteString("**YOUR TIMETABLE**\n")
	fmt.Fprintf(&b, "(%s | Sem %s | Sec %s)\n", profile.DisplayName(), profile.Semester, profile.Section)
	lastUpdated := data.LastUpdated
	if lastUpdated == "" {
		lastUpdated = "N/A"
	}
	fmt.Fprintf(&b, "Last Updated: %s\n\n", lastUpdated)

	if len(data.PeriodTimings) > 0 {
		b.WriteString("**Period Timings:**\n")
		for _, p := range data.PeriodTimings {
			fmt.Fprintf(&b, "- Period %d: %s - %s\n", p.Period, p.Start, p.End)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Weekly Schedule:**\n\n")
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		classes, ok := schedule[day]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "**%s:**\n", day)
		for i, class := range classes {
			fmt.Fprintf(&b, "- Period %d-%d: %s\n", i*2+1, i*2+2, class)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// notificationsAnswer renders the notifications visible to the profile.
func (s *ChatService) notificationsAnswer(data *models.AdminData, profile *models.StudentProfile) string {
	if !profile.IsSet() {
		return "Please set your profile to see notifications."
	}
	if len(data.Notifications) == 0 {
		return "No notifications at the moment."
	}

	visible := s.notifier.FilterFor(profile, data.Notifications)
	if len(visible) == 0 {
		return "No notifications for you at the moment."
	}

	var b strings.Builder
	b.WriteString("**YOUR NOTIFICATIONS:**\n\n")
	for _, n := range visible {
		priorityTag := ""
		if n.Priority == models.PriorityHigh {
			priorityTag = "[IMPORTANT] "
		}
		notifType := strings.ToUpper(n.Type)
		if notifType == "" {
			notifType = "INFO"
		}
		fmt.Fprintf(&b, "**%s%s** (%s)\n", priorityTag, n.Title, notifType)
		fmt.Fprintf(&b, "%s\n", n.Message)
		fmt.Fprintf(&b, "Date: %s\n\n", n.Date)
	}
	return b.String()
}

// examScheduleAnswer renders the exam windows; upcoming exams targeted at
// a department are filtered against the profile.
func examScheduleAnswer(data *models.AdminData, profile *models.StudentProfile) (string, bool) {
	schedule := data.ExamSchedule
	if schedule == nil {
		return "", false
	}

	var b strings.Builder
	b.WriteString("**EXAMINATION SCHEDULE:**\n\n")
	fmt.Fprintf(&b, "- Internal Exams: %s\n", valueOrNA(schedule.InternalExams))
	fmt.Fprintf(&b, "- Odd Semester Exams: %s\n", valueOrNA(schedule.OddSemesterExams))
	fmt.Fprintf(&b, "- Even Semester Exams: %s\n\n", valueOrNA(schedule.EvenSemesterExams))

	if len(schedule.Upcoming) > 0 {
		b.WriteString("**Upcoming Exams:**\n")
		for _, exam := range schedule.Upcoming {
			if profile.IsSet() && exam.Target != "" && exam.Target != models.TargetAll && !strings.Contains(exam.Target, profile.Dept) {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", exam.Name, exam.Date)
		}
	}
	return b.String(), true
}

// facultyAnswer lists faculty for the profile's department, or a compact
// listing of every department when the profile is unset or unknown.
func facultyAnswer(data *models.AdminData, profile *models.StudentProfile) (string, bool) {
	if len(data.Faculty) == 0 {
		return "", false
	}

	if profile.IsSet() {
		if members, ok := data.Faculty[profile.Dept]; ok {
			var b strings.Builder
			fmt.Fprintf(&b, "**%s FACULTY:**\n\n", profile.DisplayName())
			for _, member := range members {
				fmt.Fprintf(&b, "- **%s**\n", member.Name)
				fmt.Fprintf(&b, "  Subject: %s\n", member.Subject)
				fmt.Fprintf(&b, "  Cabin: %s\n\n", member.Cabin)
			}
			return b.String(), true
		}
	}

	depts := make([]string, 0, len(data.Faculty))
	for dept := range data.Faculty {
		depts = append(depts, dept)
	}
	sort.Strings(depts)

	var b strings.Builder
	b.WriteString("**FACULTY INFORMATION:**\n\n")
	for _, dept := range depts {
		fmt.Fprintf(&b, "**%s Department:**\n", dept)
		for _, member := range data.Faculty[dept] {
			fmt.Fprintf(&b, "- %s (%s)\n", member.Name, member.Subject)
		}
		b.WriteString("\n")
	}
	return b.String(), true
}

// customSectionAnswer matches the query keywords against admin-defined
// sections; a single keyword hit is enough.
func customSectionAnswer(data *models.AdminData, queryKeywords map[string]struct{}) (string, bool) {
	for _, section := range data.CustomSections {
		for _, keyword := range section.Keywords {
			if _, ok := queryKeywords[strings.ToLower(keyword)]; ok {
				name := section.Name
				if name == "" {
					name = "Information"
				}
				return fmt.Sprintf("**%s:**\n\n%s", strings.ToUpper(name), section.Content), true
			}
		}
	}
	return "", false
}

func hasAnyKeyword(set map[string]struct{}, keywords []string) bool {
	for _, keyword := range keywords {
		if _, ok := set[keyword]; ok {
			return true
		}
	}
	return false
}

func containsAny(lower string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

func valueOrNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
