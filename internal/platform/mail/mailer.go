// Package mail delivers PIN and welcome messages over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"task_backend/internal/config"
)

// Mailer sends templated HTML mail through the configured SMTP server.
// It implements the auth usecase Notifier interface.
type Mailer struct {
	cfg config.EmailConfig
}

// NewMailer creates a Mailer from the email configuration.
func NewMailer(cfg config.EmailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("email is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	slog.Info("email sent", "to", to, "subject", subject)
	return nil
}

// SendVerificationPin delivers an email verification PIN.
func (m *Mailer) SendVerificationPin(_ context.Context, email, username, pin string) error {
	body := fmt.Sprintf(`
<h1>Welcome to Todo App, %s!</h1>
<p>Your verification code is:</p>
<div style="background-color: #f4f4f4; padding: 15px; margin: 20px 0; text-align: center; font-size: 24px; letter-spacing: 5px; font-family: monospace;">
  <strong>%s</strong>
</div>
<p>This code will expire in 30 minutes.</p>
<p>If you didn't create an account, please ignore this email.</p>`, username, pin)
	return m.send(email, "Email Verification Code", body)
}

// SendResetPin delivers a password reset PIN.
func (m *Mailer) SendResetPin(_ context.Context, email, username, pin string) error {
	body := fmt.Sprintf(`
<h1>Hello %s!</h1>
<p>You requested to reset your password.</p>
<p>Your password reset PIN is: <strong>%s</strong></p>
<p>This PIN will expire in 15 minutes.</p>
<p>If you didn't request this password reset, please ignore this email.</p>`, username, pin)
	return m.send(email, "Reset Your Password", body)
}

// SendWelcome delivers the post-verification welcome mail.
func (m *Mailer) SendWelcome(_ context.Context, email, username string) error {
	body := fmt.Sprintf(`
<h1>Welcome to Todo App, %s!</h1>
<p>Thank you for verifying your email. Your account is now fully activated!</p>
<p>You can now create task lists and start organizing your tasks.</p>`, username)
	return m.send(email, "Welcome to Todo App!", body)
}
