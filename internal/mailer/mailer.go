// Package mailer defines the outbound notification collaborator. Actual
// email delivery is not implemented; the contact relay calls the notifier
// best-effort and ignores failures.
package mailer

import (
	"context"
	"log/slog"

	"github.com/atolyedev/atolye/internal/message"
	"github.com/atolyedev/atolye/internal/team"
)

// Notifier is notified when a team receives a contact message.
type Notifier interface {
	ContactReceived(ctx context.Context, to *team.Team, msg *message.Message) error
}

// LogNotifier is the stub Notifier: it logs the notification instead of
// sending mail.
type LogNotifier struct{}

// ContactReceived logs the would-be notification.
func (LogNotifier) ContactReceived(ctx context.Context, to *team.Team, msg *message.Message) error {
	slog.Info("contact message received",
		"team_id", to.ID,
		"team_name", to.Name,
		"message_id", msg.ID,
		"subject", msg.Subject,
	)
	return nil
}
