package resources

import (
	"context"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/google/uuid"
)

type PostgresMedicationRepository struct {
	db dbx.DBTX
}

func NewPostgresMedicationRepository(db dbx.DBTX) *PostgresMedicationRepository {
	return &PostgresMedicationRepository{db: db}
}

const medicationColumns = `id, user_id, name, dosage, frequency, active, created_at`

func scanMedication(row scanner) (*models.Medication, error) {
	m := &models.Medication{}
	if err := row.Scan(&m.ID, &m.Owner, &m.Name, &m.Dosage, &m.Frequency, &m.Active, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns only the requester's medications; there are no defaults.
func (r *PostgresMedicationRepository) List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Medication, int, error) {
	var items []*models.Medication
	total, err := list(ctx, r.db, "medications", medicationColumns, visibleTo(userID, false, f), f, func(row scanner) error {
		m, err := scanMedication(row)
		if err != nil {
			return err
		}
		items = append(items, m)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresMedicationRepository) Get(ctx context.Context, id string) (*models.Medication, error) {
	query := `SELECT ` + medicationColumns + ` FROM medications WHERE id = $1`
	m, err := scanMedication(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(err, "Medication")
	}
	return m, nil
}

func (r *PostgresMedicationRepository) Create(ctx context.Context, m *models.Medication) (*models.Medication, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	query := `INSERT INTO medications (id, user_id, name, dosage, frequency, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, m.ID, m.Owner, m.Name, m.Dosage, m.Frequency, m.Active).Scan(&m.CreatedAt)
	if err != nil {
		return nil, mapRowErr(err, "Medication")
	}
	return m, nil
}

func (r *PostgresMedicationRepository) Update(ctx context.Context, id string, upd models.MedicationUpdate) (*models.Medication, error) {
	query := `UPDATE medications
		SET name = COALESCE($2, name),
		    dosage = COALESCE($3, dosage),
		    frequency = COALESCE($4, frequency),
		    active = COALESCE($5, active)
		WHERE id = $1
		RETURNING ` + medicationColumns

	m, err := scanMedication(r.db.QueryRowContext(ctx, query, id, upd.Name, upd.Dosage, upd.Frequency, upd.Active))
	if err != nil {
		return nil, mapRowErr(err, "Medication")
	}
	return m, nil
}

func (r *PostgresMedicationRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "medications", id, "Medication")
}
