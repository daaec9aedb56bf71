package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/ownership"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/repomanager"
)

func symptomOwner(s *models.Symptom) ownership.Owner       { return s.Owner }
func habitOwner(h *models.Habit) ownership.Owner           { return h.Owner }
func medicationOwner(m *models.Medication) ownership.Owner { return m.Owner }

// SymptomService manages symptom definitions: system defaults plus the
// requester's own.
type SymptomService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSymptomService(db *sql.DB, m repomanager.RepositoryManager) *SymptomService {
	return &SymptomService{db: db, repomanager: m}
}

func (s *SymptomService) List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Symptom, int, error) {
	return s.repomanager.Symptoms(s.db).List(ctx, userID, f)
}

func (s *SymptomService) Get(ctx context.Context, userID, id string) (*models.Symptom, error) {
	repo := s.repomanager.Symptoms(s.db)
	return loadVisible(ctx, repo.Get, symptomOwner, ownership.Symptom, "Symptom", userID, id)
}

// Create stores a custom symptom owned by userID.
func (s *SymptomService) Create(ctx context.Context, userID string, in *models.Symptom) (*models.Symptom, error) {
	in.Owner = ownership.User(userID)
	return s.repomanager.Symptoms(s.db).Create(ctx, in)
}

func (s *SymptomService) Update(ctx context.Context, userID, id string, upd models.SymptomUpdate) (*models.Symptom, error) {
	if upd.IsEmpty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	repo := s.repomanager.Symptoms(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, symptomOwner, ownership.OpUpdate, ownership.Symptom, userID, id); err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, upd)
}

func (s *SymptomService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Symptoms(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, symptomOwner, ownership.OpDelete, ownership.Symptom, userID, id); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// HabitService manages habit definitions: system defaults plus the
// requester's own.
type HabitService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHabitService(db *sql.DB, m repomanager.RepositoryManager) *HabitService {
	return &HabitService{db: db, repomanager: m}
}

func (s *HabitService) List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Habit, int, error) {
	return s.repomanager.Habits(s.db).List(ctx, userID, f)
}

func (s *HabitService) Get(ctx context.Context, userID, id string) (*models.Habit, error) {
	repo := s.repomanager.Habits(s.db)
	return loadVisible(ctx, repo.Get, habitOwner, ownership.Habit, "Habit", userID, id)
}

func (s *HabitService) Create(ctx context.Context, userID string, in *models.Habit) (*models.Habit, error) {
	in.Owner = ownership.User(userID)
	return s.repomanager.Habits(s.db).Create(ctx, in)
}

func (s *HabitService) Update(ctx context.Context, userID, id string, upd models.HabitUpdate) (*models.Habit, error) {
	if upd.IsEmpty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	repo := s.repomanager.Habits(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, habitOwner, ownership.OpUpdate, ownership.Habit, userID, id); err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, upd)
}

func (s *HabitService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Habits(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, habitOwner, ownership.OpDelete, ownership.Habit, userID, id); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// MedicationService manages medications, which are always user-owned.
type MedicationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMedicationService(db *sql.DB, m repomanager.RepositoryManager) *MedicationService {
	return &MedicationService{db: db, repomanager: m}
}

func (s *MedicationService) List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Medication, int, error) {
	return s.repomanager.Medications(s.db).List(ctx, userID, f)
}

func (s *MedicationService) Get(ctx context.Context, userID, id string) (*models.Medication, error) {
	repo := s.repomanager.Medications(s.db)
	return loadVisible(ctx, repo.Get, medicationOwner, ownership.Medication, "Medication", userID, id)
}

func (s *MedicationService) Create(ctx context.Context, userID string, in *models.Medication) (*models.Medication, error) {
	in.Owner = ownership.User(userID)
	return s.repomanager.Medications(s.db).Create(ctx, in)
}

func (s *MedicationService) Update(ctx context.Context, userID, id string, upd models.MedicationUpdate) (*models.Medication, error) {
	if upd.IsEmpty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	repo := s.repomanager.Medications(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, medicationOwner, ownership.OpUpdate, ownership.Medication, userID, id); err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, upd)
}

func (s *MedicationService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Medications(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, medicationOwner, ownership.OpDelete, ownership.Medication, userID, id); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}
