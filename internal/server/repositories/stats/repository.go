// Package stats provides the read-only aggregate queries behind the
// statistics summary. Every query is independent of the others.
package stats

import (
	"context"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
)

type Repository interface {
	// MoodSince returns the count and sum of mood scores logged at or after since.
	MoodSince(ctx context.Context, userID string, since time.Time) (count int, sum int, err error)
	SymptomCountsSince(ctx context.Context, userID string, since time.Time) ([]models.SymptomCount, error)
	Totals(ctx context.Context, userID string) (models.LogTotals, error)
	// ActiveDays returns the distinct calendar days (YYYY-MM-DD in tz) with
	// at least one log of any kind at or after since.
	ActiveDays(ctx context.Context, userID string, since time.Time, tz string) ([]string, error)
}
