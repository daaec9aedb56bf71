package resources

import (
	"context"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/google/uuid"
)

type PostgresSymptomRepository struct {
	db dbx.DBTX
}

func NewPostgresSymptomRepository(db dbx.DBTX) *PostgresSymptomRepository {
	return &PostgresSymptomRepository{db: db}
}

const symptomColumns = `id, user_id, name, category, active, created_at`

func scanSymptom(row scanner) (*models.Symptom, error) {
	s := &models.Symptom{}
	if err := row.Scan(&s.ID, &s.Owner, &s.Name, &s.Category, &s.Active, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresSymptomRepository) List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Symptom, int, error) {
	var items []*models.Symptom
	total, err := list(ctx, r.db, "symptoms", symptomColumns, visibleTo(userID, true, f), f, func(row scanner) error {
		s, err := scanSymptom(row)
		if err != nil {
			return err
		}
		items = append(items, s)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresSymptomRepository) Get(ctx context.Context, id string) (*models.Symptom, error) {
	query := `SELECT ` + symptomColumns + ` FROM symptoms WHERE id = $1`
	s, err := scanSymptom(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(err, "Symptom")
	}
	return s, nil
}

func (r *PostgresSymptomRepository) Create(ctx context.Context, s *models.Symptom) (*models.Symptom, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `INSERT INTO symptoms (id, user_id, name, category, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	if err := r.db.QueryRowContext(ctx, query, s.ID, s.Owner, s.Name, s.Category, s.Active).Scan(&s.CreatedAt); err != nil {
		return nil, mapRowErr(err, "Symptom")
	}
	return s, nil
}

func (r *PostgresSymptomRepository) Update(ctx context.Context, id string, upd models.SymptomUpdate) (*models.Symptom, error) {
	query := `UPDATE symptoms
		SET name = COALESCE($2, name),
		    category = COALESCE($3, category),
		    active = COALESCE($4, active)
		WHERE id = $1
		RETURNING ` + symptomColumns

	s, err := scanSymptom(r.db.QueryRowContext(ctx, query, id, upd.Name, upd.Category, upd.Active))
	if err != nil {
		return nil, mapRowErr(err, "Symptom")
	}
	return s, nil
}

func (r *PostgresSymptomRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "symptoms", id, "Symptom")
}
