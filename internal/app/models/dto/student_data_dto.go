package dto

import "github.com/campushelp/helpdesk/internal/app/models"

// StudentDataResponse feeds the student-facing profile form and the
// notification panel. Slices are always present, never null.
type StudentDataResponse struct {
	Departments   []models.Department   `json:"departments"`
	Semesters     []string              `json:"semesters"`
	Sections      []string              `json:"sections"`
	Notifications []models.Notification `json:"notifications"`
}
