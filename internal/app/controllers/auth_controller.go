package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushelp/helpdesk/internal/app/models/dto"
	"github.com/campushelp/helpdesk/internal/app/services"
	"github.com/campushelp/helpdesk/internal/middleware"
	"github.com/campushelp/helpdesk/internal/pkg/apperrors"
)

// AuthController handles the two-step admin login
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login godoc
// @Summary Admin login, step one
// @Description Verifies the password and emails a one-time code to the admin
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /secure-admin/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("username and password are required"))
		return
	}

	if err := c.authService.BeginLogin(req.Username, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Verification code sent to your registered email",
		Step:    "otp",
	})
}

// VerifyOTP godoc
// @Summary Admin login, step two
// @Description Checks the one-time code and issues an admin session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Username and one-time code"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /secure-admin/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("username and otp are required"))
		return
	}

	token, expiresIn, account, err := c.authService.CompleteLogin(req.Username, req.OTP)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		FullName:  account.FullName,
		Role:      string(account.Role),
	})
}

// Logout godoc
// @Summary Admin logout
// @Description Acknowledges logout; the client discards its token
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /secure-admin/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Logged out",
	})
}
