package logs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/google/uuid"
)

var moodLogs = table{
	name:       "mood_logs",
	columns:    "l.id, l.user_id, l.mood_score, l.energy_level, l.stress_level, l.notes, l.logged_at, l.created_at",
	timeColumn: "l.logged_at",
	resource:   "Mood log",
}

type PostgresMoodLogRepository struct {
	db dbx.DBTX
}

func NewPostgresMoodLogRepository(db dbx.DBTX) *PostgresMoodLogRepository {
	return &PostgresMoodLogRepository{db: db}
}

func scanMoodLog(row scanner) (*models.MoodLog, error) {
	l := &models.MoodLog{}
	err := row.Scan(&l.ID, &l.UserID, &l.MoodScore, &l.EnergyLevel, &l.StressLevel, &l.Notes, &l.LoggedAt, &l.CreatedAt)
	return l, err
}

func (r *PostgresMoodLogRepository) List(ctx context.Context, userID string, f models.LogFilter) ([]*models.MoodLog, int, error) {
	return listRows(ctx, r.db, moodLogs, userID, f, scanMoodLog)
}

func (r *PostgresMoodLogRepository) Get(ctx context.Context, id string) (*models.MoodLog, error) {
	return getRow(ctx, r.db, moodLogs, id, scanMoodLog)
}

func (r *PostgresMoodLogRepository) Create(ctx context.Context, l *models.MoodLog) (*models.MoodLog, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	query := `INSERT INTO mood_logs (id, user_id, mood_score, energy_level, stress_level, notes, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		l.ID, l.UserID, l.MoodScore, l.EnergyLevel, l.StressLevel, l.Notes, l.LoggedAt).Scan(&l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresMoodLogRepository) Update(ctx context.Context, id string, upd models.MoodLogUpdate) (*models.MoodLog, error) {
	set := `mood_score = COALESCE($2, mood_score),
		energy_level = COALESCE($3, energy_level),
		stress_level = COALESCE($4, stress_level),
		notes = COALESCE($5, notes),
		logged_at = COALESCE($6, logged_at)`
	args := []any{upd.MoodScore, upd.EnergyLevel, upd.StressLevel, upd.Notes, upd.LoggedAt}
	return updateRow(ctx, r.db, moodLogs, id, set, args, scanMoodLog)
}

func (r *PostgresMoodLogRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, moodLogs, id)
}
