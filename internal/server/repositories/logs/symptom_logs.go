package logs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/google/uuid"
)

var symptomLogs = table{
	name:           "symptom_logs",
	join:           "JOIN symptoms r ON r.id = l.symptom_id",
	columns:        "l.id, l.user_id, l.symptom_id, r.name, l.severity, l.notes, l.logged_at, l.created_at",
	timeColumn:     "l.logged_at",
	resourceColumn: "l.symptom_id",
	resource:       "Symptom log",
}

type PostgresSymptomLogRepository struct {
	db dbx.DBTX
}

func NewPostgresSymptomLogRepository(db dbx.DBTX) *PostgresSymptomLogRepository {
	return &PostgresSymptomLogRepository{db: db}
}

func scanSymptomLog(row scanner) (*models.SymptomLog, error) {
	l := &models.SymptomLog{}
	err := row.Scan(&l.ID, &l.UserID, &l.SymptomID, &l.SymptomName, &l.Severity, &l.Notes, &l.LoggedAt, &l.CreatedAt)
	return l, err
}

func (r *PostgresSymptomLogRepository) List(ctx context.Context, userID string, f models.LogFilter) ([]*models.SymptomLog, int, error) {
	return listRows(ctx, r.db, symptomLogs, userID, f, scanSymptomLog)
}

func (r *PostgresSymptomLogRepository) Get(ctx context.Context, id string) (*models.SymptomLog, error) {
	return getRow(ctx, r.db, symptomLogs, id, scanSymptomLog)
}

func (r *PostgresSymptomLogRepository) Create(ctx context.Context, l *models.SymptomLog) (*models.SymptomLog, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	query := `INSERT INTO symptom_logs (id, user_id, symptom_id, severity, notes, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, l.ID, l.UserID, l.SymptomID, l.Severity, l.Notes, l.LoggedAt).Scan(&l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresSymptomLogRepository) Update(ctx context.Context, id string, upd models.SymptomLogUpdate) (*models.SymptomLog, error) {
	set := `severity = COALESCE($2, severity),
		notes = COALESCE($3, notes),
		logged_at = COALESCE($4, logged_at)`
	return updateRow(ctx, r.db, symptomLogs, id, set, []any{upd.Severity, upd.Notes, upd.LoggedAt}, scanSymptomLog)
}

func (r *PostgresSymptomLogRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, symptomLogs, id)
}
