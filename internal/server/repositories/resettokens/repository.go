package resettokens

import (
	"context"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
)

type Repository interface {
	DeleteByUser(ctx context.Context, userID string) error
	Create(ctx context.Context, token *models.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	// Delete reports how many rows it removed so callers can detect a
	// concurrent consumer.
	Delete(ctx context.Context, id string) (int64, error)
}
