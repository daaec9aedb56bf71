package logs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/google/uuid"
)

// Medication logs carry an optional taken_at, so lists use created_at.
var medicationLogs = table{
	name:           "medication_logs",
	join:           "JOIN medications r ON r.id = l.medication_id",
	columns:        "l.id, l.user_id, l.medication_id, r.name, l.taken, l.taken_at, l.notes, l.created_at",
	timeColumn:     "l.created_at",
	resourceColumn: "l.medication_id",
	resource:       "Medication log",
}

type PostgresMedicationLogRepository struct {
	db dbx.DBTX
}

func NewPostgresMedicationLogRepository(db dbx.DBTX) *PostgresMedicationLogRepository {
	return &PostgresMedicationLogRepository{db: db}
}

func scanMedicationLog(row scanner) (*models.MedicationLog, error) {
	l := &models.MedicationLog{}
	err := row.Scan(&l.ID, &l.UserID, &l.MedicationID, &l.MedicationName, &l.Taken, &l.TakenAt, &l.Notes, &l.CreatedAt)
	return l, err
}

func (r *PostgresMedicationLogRepository) List(ctx context.Context, userID string, f models.LogFilter) ([]*models.MedicationLog, int, error) {
	return listRows(ctx, r.db, medicationLogs, userID, f, scanMedicationLog)
}

func (r *PostgresMedicationLogRepository) Get(ctx context.Context, id string) (*models.MedicationLog, error) {
	return getRow(ctx, r.db, medicationLogs, id, scanMedicationLog)
}

func (r *PostgresMedicationLogRepository) Create(ctx context.Context, l *models.MedicationLog) (*models.MedicationLog, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	query := `INSERT INTO medication_logs (id, user_id, medication_id, taken, taken_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, l.ID, l.UserID, l.MedicationID, l.Taken, l.TakenAt, l.Notes).Scan(&l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresMedicationLogRepository) Update(ctx context.Context, id string, upd models.MedicationLogUpdate) (*models.MedicationLog, error) {
	set := `taken = COALESCE($2, taken),
		taken_at = COALESCE($3, taken_at),
		notes = COALESCE($4, notes)`
	return updateRow(ctx, r.db, medicationLogs, id, set, []any{upd.Taken, upd.TakenAt, upd.Notes}, scanMedicationLog)
}

func (r *PostgresMedicationLogRepository) Delete(ctx context.Context, id string) error {
	return deleteRow(ctx, r.db, medicationLogs, id)
}
