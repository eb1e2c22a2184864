package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushelp/helpdesk/internal/app/models"
	"github.com/campushelp/helpdesk/internal/pkg/apperrors"
	"github.com/campushelp/helpdesk/internal/pkg/auth"
	"github.com/campushelp/helpdesk/internal/pkg/email"
)

// Lockout policy for failed password attempts.
const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

// pendingLogin tracks an issued OTP awaiting verification.
type pendingLogin struct {
	otp       string
	expiresAt time.Time
}

// loginAttempts tracks failed password attempts per username.
type loginAttempts struct {
	count        int
	lockoutUntil time.Time
}

// AuthService implements the two-step admin login: password check
// followed by OTP verification. Accounts are pre-created in
// configuration; there is no self-registration.
type AuthService struct {
	accounts map[string]models.AdminAccount
	jwt      *auth.JWTService
	sender   email.Sender
	logger   zerolog.Logger

	mu       sync.Mutex
	pending  map[string]pendingLogin
	attempts map[string]loginAttempts
}

// NewAuthService creates the auth service over the configured accounts
func NewAuthService(accounts []models.AdminAccount, jwtService *auth.JWTService, sender email.Sender, logger zerolog.Logger) *AuthService {
	byName := make(map[string]models.AdminAccount, len(accounts))
	for _, account := range accounts {
		byName[account.Username] = account
	}
	return &AuthService{
		accounts: byName,
		jwt:      jwtService,
		sender:   sender,
		logger:   logger,
		pending:  make(map[string]pendingLogin),
		attempts: make(map[string]loginAttempts),
	}
}

// BeginLogin verifies the password and issues an OTP. Unknown usernames
// and wrong passwords fail identically so the endpoint cannot be used to
// enumerate accounts.
func (s *AuthService) BeginLogin(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	att := s.attempts[username]
	if time.Now().Before(att.lockoutUntil) {
		return apperrors.ErrAccountLocked
	}

	account, ok := s.accounts[username]
	if !ok || !auth.CheckPassword(account.PasswordHash, password) {
		att.count++
		if att.count >= maxLoginAttempts {
			att.lockoutUntil = time.Now().Add(lockoutDuration)
			att.count = 0
			s.logger.Warn().Str("username", username).Msg("Admin login locked out after repeated failures")
		}
		s.attempts[username] = att
		return apperrors.ErrInvalidCredentials
	}
	delete(s.attempts, username)

	code, err := auth.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to start login: %w", err)
	}
	s.pending[username] = pendingLogin{
		otp:       code,
		expiresAt: time.Now().Add(auth.OTPValidity),
	}

	if err := s.sender.SendOTP(account.Email, account.FullName, code); err != nil {
		delete(s.pending, username)
		return fmt.Errorf("failed to deliver OTP: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("Admin OTP issued")
	return nil
}

// CompleteLogin checks the OTP and issues an admin session token. A code
// is single-use and expires after auth.OTPValidity.
func (s *AuthService) CompleteLogin(username, code string) (string, int, *models.AdminAccount, error) {
	s.mu.Lock()
	p, pendingOK := s.pending[username]
	account, accountOK := s.accounts[username]
	if pendingOK {
		delete(s.pending, username)
	}
	s.mu.Unlock()

	if !pendingOK || !accountOK || code == "" || p.otp != code || time.Now().After(p.expiresAt) {
		return "", 0, nil, apperrors.ErrOTPInvalid
	}

	token, expiresIn, err := s.jwt.GenerateToken(&account)
	if err != nil {
		return "", 0, nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("username", username).Str("role", string(account.Role)).Msg("Admin logged in")
	return token, expiresIn, &account, nil
}
