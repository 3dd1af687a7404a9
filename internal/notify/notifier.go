// Package notify delivers the registration verification artifact. Sending
// is best-effort from the caller's point of view: the registration
// workflow logs failures and moves on.
package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/callimard/makemeacube/internal/config"
	"github.com/callimard/makemeacube/internal/models"
)

// Notifier sends the email-verification artifact for a freshly registered
// user.
type Notifier interface {
	SendVerification(user *models.User) error
}

// SMTP sends the verification link through a plain SMTP relay.
type SMTP struct {
	cfg *config.Config
}

func NewSMTP(cfg *config.Config) *SMTP {
	return &SMTP{cfg: cfg}
}

func (n *SMTP) SendVerification(user *models.User) error {
	link := verificationLink(n.cfg.PublicBaseURL, user.VerificationToken)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify your MakeMeACube account\r\n\r\n"+
			"Hi %s,\r\n\r\nConfirm your email address by opening:\r\n%s\r\n",
		n.cfg.SMTPFrom, user.Email, user.Pseudo, link)

	addr := n.cfg.SMTPHost + ":" + n.cfg.SMTPPort
	var auth smtp.Auth
	if n.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPassword, n.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, n.cfg.SMTPFrom, []string{user.Email}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification mail: %w", err)
	}
	return nil
}

// Log stands in when no SMTP relay is configured: it records the
// verification link instead of sending it.
type Log struct{}

func (Log) SendVerification(user *models.User) error {
	slog.Info("verification link issued",
		"user_id", user.ID,
		"email", user.Email,
		"token", user.VerificationToken)
	return nil
}

func verificationLink(baseURL, token string) string {
	return baseURL + "/api/users/email-verification?token=" + token
}
