// Package resources provides PostgreSQL-backed repositories for the resource
// definitions users log against: symptoms, habits and medications.
//
// Lists return only rows visible to the requester. Update never writes
// user_id, so a row's owner is fixed at creation.
package resources

import (
	"context"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
)

type SymptomRepository interface {
	List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Symptom, int, error)
	Get(ctx context.Context, id string) (*models.Symptom, error)
	Create(ctx context.Context, s *models.Symptom) (*models.Symptom, error)
	Update(ctx context.Context, id string, upd models.SymptomUpdate) (*models.Symptom, error)
	Delete(ctx context.Context, id string) error
}

type HabitRepository interface {
	List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Habit, int, error)
	Get(ctx context.Context, id string) (*models.Habit, error)
	Create(ctx context.Context, h *models.Habit) (*models.Habit, error)
	Update(ctx context.Context, id string, upd models.HabitUpdate) (*models.Habit, error)
	Delete(ctx context.Context, id string) error
}

type MedicationRepository interface {
	List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Medication, int, error)
	Get(ctx context.Context, id string) (*models.Medication, error)
	Create(ctx context.Context, m *models.Medication) (*models.Medication, error)
	Update(ctx context.Context, id string, upd models.MedicationUpdate) (*models.Medication, error)
	Delete(ctx context.Context, id string) error
}
