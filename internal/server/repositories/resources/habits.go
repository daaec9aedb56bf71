package resources

import (
	"context"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/google/uuid"
)

type PostgresHabitRepository struct {
	db dbx.DBTX
}

func NewPostgresHabitRepository(db dbx.DBTX) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

const habitColumns = `id, user_id, name, description, tracking_type, unit, active, created_at`

func scanHabit(row scanner) (*models.Habit, error) {
	h := &models.Habit{}
	var tracking string
	if err := row.Scan(&h.ID, &h.Owner, &h.Name, &h.Description, &tracking, &h.Unit, &h.Active, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.TrackingType = models.TrackingType(tracking)
	return h, nil
}

func (r *PostgresHabitRepository) List(ctx context.Context, userID string, f models.ResourceFilter) ([]*models.Habit, int, error) {
	var items []*models.Habit
	total, err := list(ctx, r.db, "habits", habitColumns, visibleTo(userID, true, f), f, func(row scanner) error {
		h, err := scanHabit(row)
		if err != nil {
			return err
		}
		items = append(items, h)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresHabitRepository) Get(ctx context.Context, id string) (*models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`
	h, err := scanHabit(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapRowErr(err, "Habit")
	}
	return h, nil
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *models.Habit) (*models.Habit, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	query := `INSERT INTO habits (id, user_id, name, description, tracking_type, unit, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		h.ID, h.Owner, h.Name, h.Description, string(h.TrackingType), h.Unit, h.Active).Scan(&h.CreatedAt)
	if err != nil {
		return nil, mapRowErr(err, "Habit")
	}
	return h, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, id string, upd models.HabitUpdate) (*models.Habit, error) {
	var tracking *string
	if upd.TrackingType != nil {
		t := string(*upd.TrackingType)
		tracking = &t
	}

	query := `UPDATE habits
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    tracking_type = COALESCE($4, tracking_type),
		    unit = COALESCE($5, unit),
		    active = COALESCE($6, active)
		WHERE id = $1
		RETURNING ` + habitColumns

	h, err := scanHabit(r.db.QueryRowContext(ctx, query, id, upd.Name, upd.Description, tracking, upd.Unit, upd.Active))
	if err != nil {
		return nil, mapRowErr(err, "Habit")
	}
	return h, nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "habits", id, "Habit")
}
