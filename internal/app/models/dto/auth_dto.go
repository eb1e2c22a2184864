package dto

// LoginRequest is step one of the admin login: username and password.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse acknowledges a successful password check; the OTP is
// delivered out of band.
type LoginResponse struct {
	Message string `json:"message"`
	Step    string `json:"step" example:"otp"`
}

// VerifyOTPRequest is step two of the admin login.
type VerifyOTPRequest struct {
	Username string `json:"username" binding:"required"`
	OTP      string `json:"otp" binding:"required"`
}

// TokenResponse carries the issued admin session token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
}
