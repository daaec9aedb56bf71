package logs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/google/uuid"
)

var habitLogs = table{
	name:           "habit_logs",
	join:           "JOIN habits r ON r.id = l.habit_id",
	columns:        "l.id, l.user_id, l.habit_id, r.name, l.value, l.notes, l.logged_at, l.created_at",
	timeColumn:     "l.logged_at",
	resourceColumn: "l.habit_id",
	resource:       "Habit log",
}

type PostgresHabitLogRepository struct {
	db dbx.DBTX
}

func NewPostgresHabitLogRepository(db dbx.DBTX) *PostgresHabitLogRepository {
	return &PostgresHabitLogRepository{db: db}
}

func scanHabitLog(row scanner) (*models.HabitLog, error) {
	l := &models.HabitLog{}
	err := row.Scan(&l.ID, &l.UserID, &l.HabitID, &l.HabitName, &l.Value, &l.Notes, &l.LoggedAt, &l.CreatedAt)
	return l, err
}

func (r *PostgresHabitLogRepository) List(ctx context.Context, userID string, f models.LogFilter) ([]*models.HabitLog, int, error) {
	return listRows(ctx, r.db, habitLogs, userID, f, scanHabitLog)
}

func (r *PostgresHabitLogRepository) Get(ctx context.Context, id string) (*models.HabitLog, error) {
	return getRow(ctx, r.db, habitLogs, id, scanHabitLog)
}

func (r *PostgresHabitLogRepository) Create(ctx context.Context, l *models.HabitLog) (*models.HabitLog, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	query := `INSERT INTO habit_logs (id, user_id, habit_id, value, notes, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, l.ID, l.UserID, l.HabitID, l.Value, l.Notes, l.LoggedAt).Scan(&l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresHabitLogRepository) Update(ctx context.Context, id string, upd models.HabitLogUpdate) (*models.HabitLog, error) {
	set := `value = COALESCE($2, value),
		notes = COALESCE($3, notes),
		logged_at = COALESCE($4, logged_at)`
	return updateRow(ctx, r.db, habitLogs, id, set, []any{upd.Value, upd.Notes, upd.LoggedAt}, scanHabitLog)
}

func (r *PostgresHabitLogRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, habitLogs, id)
}
