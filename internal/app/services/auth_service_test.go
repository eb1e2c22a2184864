package services

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/pkg/apperrors"
	"github.com/campushelp/helpdesk/internal/pkg/auth"
)

// fakeSender captures issued codes instead of sending mail.
type fakeSender struct {
	lastEmail string
	lastCode  string
	sendErr   error
}

func (f *fakeSender) SendOTP(toEmail, _ string, code string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.lastEmail = toEmail
	f.lastCode = code
	return nil
}

func newTestAuthService(t *testing.T, sender *fakeSender) *AuthService {
	t.Helper()

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	accounts := []models.AdminAccount{{
		Username:     "admin",
		PasswordHash: hash,
		FullName:     "College Administrator",
		Email:        "admin@college.edu",
		Role:         models.RoleSuperAdmin,
	}}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})

	return NewAuthService(accounts, jwtService, sender, zerolog.Nop())
}

func TestAuthService_FullLoginFlow(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestAuthService(t, sender)

	require.NoError(t, svc.BeginLogin("admin", "correct-horse"))
	require.Len(t, sender.lastCode, 6)
	assert.Equal(t, "admin@college.edu", sender.lastEmail)

	token, expiresIn, account, err := svc.CompleteLogin("admin", sender.lastCode)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)
	assert.Equal(t, "College Administrator", account.FullName)
	assert.Equal(t, models.RoleSuperAdmin, account.Role)
}

func TestAuthService_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, &fakeSender{})

	err := svc.BeginLogin("admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_UnknownUserFailsIdentically(t *testing.T) {
	svc := newTestAuthService(t, &fakeSender{})

	knownErr := svc.BeginLogin("admin", "wrong")
	unknownErr := svc.BeginLogin("nobody", "wrong")

	// Same error either way, so the login endpoint cannot be used to
	// probe for usernames.
	assert.Equal(t, knownErr, unknownErr)
	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
}

func TestAuthService_LockoutAfterRepeatedFailures(t *testing.T) {
	svc := newTestAuthService(t, &fakeSender{})

	for i := 0; i < 5; i++ {
		err := svc.BeginLogin("admin", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// Locked out now, even with the right password.
	err := svc.BeginLogin("admin", "correct-horse")
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestAuthService_SuccessResetsFailureCount(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestAuthService(t, sender)

	for i := 0; i < 4; i++ {
		require.Error(t, svc.BeginLogin("admin", "wrong"))
	}
	require.NoError(t, svc.BeginLogin("admin", "correct-horse"))

	// The counter starts over after a successful password check.
	for i := 0; i < 4; i++ {
		require.ErrorIs(t, svc.BeginLogin("admin", "wrong"), apperrors.ErrInvalidCredentials)
	}
}

func TestAuthService_WrongOTP(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestAuthService(t, sender)

	require.NoError(t, svc.BeginLogin("admin", "correct-horse"))

	_, _, _, err := svc.CompleteLogin("admin", "000000")
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestAuthService_OTPIsSingleUse(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestAuthService(t, sender)

	require.NoError(t, svc.BeginLogin("admin", "correct-horse"))
	code := sender.lastCode

	_, _, _, err := svc.CompleteLogin("admin", code)
	require.NoError(t, err)

	_, _, _, err = svc.CompleteLogin("admin", code)
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestAuthService_OTPWithoutLogin(t *testing.T) {
	svc := newTestAuthService(t, &fakeSender{})

	_, _, _, err := svc.CompleteLogin("admin", "123456")
	assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
}

func TestAuthService_SendFailureClearsPending(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("smtp down")}
	svc := newTestAuthService(t, sender)

	err := svc.BeginLogin("admin", "correct-horse")
	require.Error(t, err)

	// No OTP should be redeemable after a failed delivery.
	sender.sendErr = nil
	_, _, _, otpErr := svc.CompleteLogin("admin", "123456")
	assert.ErrorIs(t, otpErr, apperrors.ErrOTPInvalid)
}
