// Package notify hands freshly issued password reset tokens to whatever
// delivers them to the user. The server never sends email itself.
package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/logging"
)

// ResetNotice is one issued reset token.
type ResetNotice struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// ResetNotifier delivers reset notices.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, n ResetNotice) error
}

// LogNotifier writes notices to the log. The raw token is only logged at
// debug level.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyPasswordReset(ctx context.Context, notice ResetNotice) error {
	n.logger.Info(ctx, "password reset token issued", "user_id", notice.UserID, "expires_at", notice.ExpiresAt)
	n.logger.Debug(ctx, "password reset token", "email", notice.Email, "token", notice.Token)
	return nil
}
