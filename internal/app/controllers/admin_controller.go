package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/app/models/dto"
	"github.com/campushelp/helpdesk/internal/app/services"
	"github.com/campushelp/helpdesk/internal/middleware"
	"github.com/campushelp/helpdesk/internal/pkg/apperrors"
)

// AdminController handles the authenticated admin data endpoints
type AdminController struct {
	adminService *services.AdminService
}

// NewAdminController creates a new admin controller
func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// GetData godoc
// @Summary Get the admin document
// @Description Returns the full admin-managed data document
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminData
// @Failure 401 {object} dto.ErrorResponse
// @Router /secure-admin/data [get]
func (c *AdminController) GetData(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.adminService.GetData())
}

// SaveData godoc
// @Summary Replace the admin document
// @Description Persists a new version of the full admin-managed data document
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AdminData true "New document contents"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /secure-admin/data [post]
func (c *AdminController) SaveData(ctx *gin.Context) {
	var data models.AdminData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("request body must be a valid data document"))
		return
	}

	if err := c.adminService.ReplaceData(&data); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Data saved successfully",
	})
}
