package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/ownership"
	"github.com/dmitrijs2005/healthlog/internal/server/repositories/repomanager"
)

// Logs have a single owner and no system defaults.
func symptomLogOwner(l *models.SymptomLog) ownership.Owner       { return ownership.User(l.UserID) }
func moodLogOwner(l *models.MoodLog) ownership.Owner             { return ownership.User(l.UserID) }
func medicationLogOwner(l *models.MedicationLog) ownership.Owner { return ownership.User(l.UserID) }
func habitLogOwner(l *models.HabitLog) ownership.Owner           { return ownership.User(l.UserID) }

// LogService serves the four log kinds. Creating a log checks that the
// referenced definition is a system default or the requester's own; the
// reference is fixed after creation.
type LogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewLogService(db *sql.DB, m repomanager.RepositoryManager) *LogService {
	return &LogService{db: db, repomanager: m, now: time.Now}
}

func (s *LogService) eventTime(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

// --- symptom logs ---

func (s *LogService) ListSymptomLogs(ctx context.Context, userID string, f models.LogFilter) ([]*models.SymptomLog, int, error) {
	return s.repomanager.SymptomLogs(s.db).List(ctx, userID, f)
}

func (s *LogService) GetSymptomLog(ctx context.Context, userID, id string) (*models.SymptomLog, error) {
	repo := s.repomanager.SymptomLogs(s.db)
	return loadVisible(ctx, repo.Get, symptomLogOwner, ownership.Log, "Symptom log", userID, id)
}

func (s *LogService) CreateSymptomLog(ctx context.Context, userID string, in *models.SymptomLog) (*models.SymptomLog, error) {
	symptoms := s.repomanager.Symptoms(s.db)
	symptom, err := loadAuthorized(ctx, symptoms.Get, symptomOwner, ownership.OpLog, ownership.Symptom, userID, in.SymptomID)
	if err != nil {
		return nil, err
	}

	in.UserID = userID
	in.LoggedAt = s.eventTime(in.LoggedAt)
	l, err := s.repomanager.SymptomLogs(s.db).Create(ctx, in)
	if err != nil {
		return nil, err
	}
	l.SymptomName = symptom.Name
	return l, nil
}

func (s *LogService) UpdateSymptomLog(ctx context.Context, userID, id string, upd models.SymptomLogUpdate) (*models.SymptomLog, error) {
	if upd.IsEmpty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	repo := s.repomanager.SymptomLogs(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, symptomLogOwner, ownership.OpUpdate, ownership.Log, userID, id); err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, upd)
}

func (s *LogService) DeleteSymptomLog(ctx context.Context, userID, id string) error {
	repo := s.repomanager.SymptomLogs(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, symptomLogOwner, ownership.OpDelete, ownership.Log, userID, id); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// --- mood logs ---

func (s *LogService) ListMoodLogs(ctx context.Context, userID string, f models.LogFilter) ([]*models.MoodLog, int, error) {
	f.ResourceID = ""
	return s.repomanager.MoodLogs(s.db).List(ctx, userID, f)
}

func (s *LogService) GetMoodLog(ctx context.Context, userID, id string) (*models.MoodLog, error) {
	repo := s.repomanager.MoodLogs(s.db)
	return loadVisible(ctx, repo.Get, moodLogOwner, ownership.Log, "Mood log", userID, id)
}

// CreateMoodLog needs no reference check: mood logs stand alone.
func (s *LogService) CreateMoodLog(ctx context.Context, userID string, in *models.MoodLog) (*models.MoodLog, error) {
	in.UserID = userID
	in.LoggedAt = s.eventTime(in.LoggedAt)
	return s.repomanager.MoodLogs(s.db).Create(ctx, in)
}

func (s *LogService) UpdateMoodLog(ctx context.Context, userID, id string, upd models.MoodLogUpdate) (*models.MoodLog, error) {
	if upd.IsEmpty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	repo := s.repomanager.MoodLogs(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, moodLogOwner, ownership.OpUpdate, ownership.Log, userID, id); err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, upd)
}

func (s *LogService) DeleteMoodLog(ctx context.Context, userID, id string) error {
	repo := s.repomanager.MoodLogs(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, moodLogOwner, ownership.OpDelete, ownership.Log, userID, id); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// --- medication logs ---

func (s *LogService) ListMedicationLogs(ctx context.Context, userID string, f models.LogFilter) ([]*models.MedicationLog, int, error) {
	return s.repomanager.MedicationLogs(s.db).List(ctx, userID, f)
}

func (s *LogService) GetMedicationLog(ctx context.Context, userID, id string) (*models.MedicationLog, error) {
	repo := s.repomanager.MedicationLogs(s.db)
	return loadVisible(ctx, repo.Get, medicationLogOwner, ownership.Log, "Medication log", userID, id)
}

func (s *LogService) CreateMedicationLog(ctx context.Context, userID string, in *models.MedicationLog) (*models.MedicationLog, error) {
	meds := s.repomanager.Medications(s.db)
	med, err := loadAuthorized(ctx, meds.Get, medicationOwner, ownership.OpLog, ownership.Medication, userID, in.MedicationID)
	if err != nil {
		return nil, err
	}

	in.UserID = userID
	l, err := s.repomanager.MedicationLogs(s.db).Create(ctx, in)
	if err != nil {
		return nil, err
	}
	l.MedicationName = med.Name
	return l, nil
}

func (s *LogService) UpdateMedicationLog(ctx context.Context, userID, id string, upd models.MedicationLogUpdate) (*models.MedicationLog, error) {
	if upd.IsEmpty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	repo := s.repomanager.MedicationLogs(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, medicationLogOwner, ownership.OpUpdate, ownership.Log, userID, id); err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, upd)
}

func (s *LogService) DeleteMedicationLog(ctx context.Context, userID, id string) error {
	repo := s.repomanager.MedicationLogs(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, medicationLogOwner, ownership.OpDelete, ownership.Log, userID, id); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// --- habit logs ---

func (s *LogService) ListHabitLogs(ctx context.Context, userID string, f models.LogFilter) ([]*models.HabitLog, int, error) {
	return s.repomanager.HabitLogs(s.db).List(ctx, userID, f)
}

func (s *LogService) GetHabitLog(ctx context.Context, userID, id string) (*models.HabitLog, error) {
	repo := s.repomanager.HabitLogs(s.db)
	return loadVisible(ctx, repo.Get, habitLogOwner, ownership.Log, "Habit log", userID, id)
}

func (s *LogService) CreateHabitLog(ctx context.Context, userID string, in *models.HabitLog) (*models.HabitLog, error) {
	habits := s.repomanager.Habits(s.db)
	habit, err := loadAuthorized(ctx, habits.Get, habitOwner, ownership.OpLog, ownership.Habit, userID, in.HabitID)
	if err != nil {
		return nil, err
	}

	in.UserID = userID
	in.LoggedAt = s.eventTime(in.LoggedAt)
	l, err := s.repomanager.HabitLogs(s.db).Create(ctx, in)
	if err != nil {
		return nil, err
	}
	l.HabitName = habit.Name
	return l, nil
}

func (s *LogService) UpdateHabitLog(ctx context.Context, userID, id string, upd models.HabitLogUpdate) (*models.HabitLog, error) {
	if upd.IsEmpty() {
		return nil, common.ErrNoFieldsToUpdate
	}
	repo := s.repomanager.HabitLogs(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, habitLogOwner, ownership.OpUpdate, ownership.Log, userID, id); err != nil {
		return nil, err
	}
	return repo.Update(ctx, id, upd)
}

func (s *LogService) DeleteHabitLog(ctx context.Context, userID, id string) error {
	repo := s.repomanager.HabitLogs(s.db)
	if _, err := loadAuthorized(ctx, repo.Get, habitLogOwner, ownership.OpDelete, ownership.Log, userID, id); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}
