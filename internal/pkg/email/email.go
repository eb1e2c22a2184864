package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// Sender delivers one-time passcodes to admin accounts.
type Sender interface {
	SendOTP(toEmail, toName, code string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// smtpSender implements Sender over plain SMTP
type smtpSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSender creates an SMTP-backed Sender
func NewSender(config SMTPConfig, logger zerolog.Logger) Sender {
	return &smtpSender{
		config: config,
		logger: logger,
	}
}

// SendOTP mails the login code. Without SMTP credentials the code is
// logged instead so the flow stays usable in development.
func (s *smtpSender) SendOTP(toEmail, toName, code string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("otp", code).
			Msg("SMTP credentials not configured - OTP not sent. Use the code above for testing.")
		return nil
	}

	subject := "Your Admin Login Code"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Admin Login Verification</h2>
				<p>Hello %s,</p>
				<p>Your one-time login code is:</p>
				<p style="font-size: 28px; letter-spacing: 4px; font-weight: bold;">%s</p>
				<p>The code expires in 5 minutes. If you did not try to log in, you can ignore this email.</p>
			</div>
		</body>
		</html>
	`, toName, code)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email over SMTP
func (s *smtpSender) sendHTMLEmail(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	headers := []string{
		fmt.Sprintf("From: %s <%s>", s.config.FromName, s.config.FromEmail),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(msg)); err != nil {
		s.logger.Error().Err(err).Str("to", to).Msg("Failed to send OTP email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
