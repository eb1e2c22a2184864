package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/app/models/dto"
	"github.com/campushelp/helpdesk/internal/app/services"
)

// StudentController serves the public student-facing data
type StudentController struct {
	adminService *services.AdminService
}

// NewStudentController creates a new student controller
func NewStudentController(adminService *services.AdminService) *StudentController {
	return &StudentController{
		adminService: adminService,
	}
}

// GetStudentData godoc
// @Summary Get student-facing data
// @Description Returns the departments, semesters, sections and notifications the student UI needs
// @Tags student
// @Produce json
// @Success 200 {object} dto.StudentDataResponse
// @Router /api/student-data [get]
func (c *StudentController) GetStudentData(ctx *gin.Context) {
	data := c.adminService.GetData()

	resp := dto.StudentDataResponse{
		Departments:   data.Departments,
		Semesters:     data.Semesters,
		Sections:      data.Sections,
		Notifications: data.Notifications,
	}
	if resp.Departments == nil {
		resp.Departments = []models.Department{}
	}
	if resp.Semesters == nil {
		resp.Semesters = []string{}
	}
	if resp.Sections == nil {
		resp.Sections = []string{}
	}
	if resp.Notifications == nil {
		resp.Notifications = []models.Notification{}
	}

	ctx.JSON(http.StatusOK, resp)
}
