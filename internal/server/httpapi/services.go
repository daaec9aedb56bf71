package httpapi

import (
	"context"

	"github.com/dmitrijs2005/healthlog/internal/server/auth"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/services"
)

// The handlers depend on these narrow views of the services layer.

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// ResourceService is implemented by the symptom, habit and medication
// services.
type ResourceService[T any, U any] interface {
	List(ctx context.Context, userID string, f models.ResourceFilter) ([]*T, int, error)
	Get(ctx context.Context, userID, id string) (*T, error)
	Create(ctx context.Context, userID string, in *T) (*T, error)
	Update(ctx context.Context, userID, id string, upd U) (*T, error)
	Delete(ctx context.Context, userID, id string) error
}

type LogService interface {
	ListSymptomLogs(ctx context.Context, userID string, f models.LogFilter) ([]*models.SymptomLog, int, error)
	GetSymptomLog(ctx context.Context, userID, id string) (*models.SymptomLog, error)
	CreateSymptomLog(ctx context.Context, userID string, in *models.SymptomLog) (*models.SymptomLog, error)
	UpdateSymptomLog(ctx context.Context, userID, id string, upd models.SymptomLogUpdate) (*models.SymptomLog, error)
	DeleteSymptomLog(ctx context.Context, userID, id string) error

	ListMoodLogs(ctx context.Context, userID string, f models.LogFilter) ([]*models.MoodLog, int, error)
	GetMoodLog(ctx context.Context, userID, id string) (*models.MoodLog, error)
	CreateMoodLog(ctx context.Context, userID string, in *models.MoodLog) (*models.MoodLog, error)
	UpdateMoodLog(ctx context.Context, userID, id string, upd models.MoodLogUpdate) (*models.MoodLog, error)
	DeleteMoodLog(ctx context.Context, userID, id string) error

	ListMedicationLogs(ctx context.Context, userID string, f models.LogFilter) ([]*models.MedicationLog, int, error)
	GetMedicationLog(ctx context.Context, userID, id string) (*models.MedicationLog, error)
	CreateMedicationLog(ctx context.Context, userID string, in *models.MedicationLog) (*models.MedicationLog, error)
	UpdateMedicationLog(ctx context.Context, userID, id string, upd models.MedicationLogUpdate) (*models.MedicationLog, error)
	DeleteMedicationLog(ctx context.Context, userID, id string) error

	ListHabitLogs(ctx context.Context, userID string, f models.LogFilter) ([]*models.HabitLog, int, error)
	GetHabitLog(ctx context.Context, userID, id string) (*models.HabitLog, error)
	CreateHabitLog(ctx context.Context, userID string, in *models.HabitLog) (*models.HabitLog, error)
	UpdateHabitLog(ctx context.Context, userID, id string, upd models.HabitLogUpdate) (*models.HabitLog, error)
	DeleteHabitLog(ctx context.Context, userID, id string) error
}

type StatsService interface {
	Summary(ctx context.Context, userID string) (*models.Summary, error)
}

// Services bundles everything the router dispatches to.
type Services struct {
	Users       UserService
	Symptoms    ResourceService[models.Symptom, models.SymptomUpdate]
	Habits      ResourceService[models.Habit, models.HabitUpdate]
	Medications ResourceService[models.Medication, models.MedicationUpdate]
	Logs        LogService
	Stats       StatsService
}
