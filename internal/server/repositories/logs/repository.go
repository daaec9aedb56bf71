// Package logs provides PostgreSQL-backed repositories for the four log
// kinds. Every list is scoped to one owner, filtered on the event time
// (creation time for medication logs) and ordered newest first with id as
// the tie-breaker.
package logs

import (
	"context"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
)

type SymptomLogRepository interface {
	List(ctx context.Context, userID string, f models.LogFilter) ([]*models.SymptomLog, int, error)
	Get(ctx context.Context, id string) (*models.SymptomLog, error)
	Create(ctx context.Context, l *models.SymptomLog) (*models.SymptomLog, error)
	Update(ctx context.Context, id string, upd models.SymptomLogUpdate) (*models.SymptomLog, error)
	Delete(ctx context.Context, id string) error
}

type MoodLogRepository interface {
	List(ctx context.Context, userID string, f models.LogFilter) ([]*models.MoodLog, int, error)
	Get(ctx context.Context, id string) (*models.MoodLog, error)
	Create(ctx context.Context, l *models.MoodLog) (*models.MoodLog, error)
	Update(ctx context.Context, id string, upd models.MoodLogUpdate) (*models.MoodLog, error)
	Delete(ctx context.Context, id string) error
}

type MedicationLogRepository interface {
	List(ctx context.Context, userID string, f models.LogFilter) ([]*models.MedicationLog, int, error)
	Get(ctx context.Context, id string) (*models.MedicationLog, error)
	Create(ctx context.Context, l *models.MedicationLog) (*models.MedicationLog, error)
	Update(ctx context.Context, id string, upd models.MedicationLogUpdate) (*models.MedicationLog, error)
	Delete(ctx context.Context, id string) error
}

type HabitLogRepository interface {
	List(ctx context.Context, userID string, f models.LogFilter) ([]*models.HabitLog, int, error)
	Get(ctx context.Context, id string) (*models.HabitLog, error)
	Create(ctx context.Context, l *models.HabitLog) (*models.HabitLog, error)
	Update(ctx context.Context, id string, upd models.HabitLogUpdate) (*models.HabitLog, error)
	Delete(ctx context.Context, id string) error
}
