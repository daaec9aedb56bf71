package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) MoodSince(ctx context.Context, userID string, since time.Time) (int, int, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(mood_score), 0)
		FROM mood_logs
		WHERE user_id = $1 AND logged_at >= $2`

	var count, sum int
	if err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&count, &sum); err != nil {
		return 0, 0, fmt.Errorf("db error: %w", err)
	}
	return count, sum, nil
}

func (r *PostgresRepository) SymptomCountsSince(ctx context.Context, userID string, since time.Time) ([]models.SymptomCount, error) {
	query := `SELECT l.symptom_id, s.name, COUNT(*), MIN(l.logged_at)
		FROM symptom_logs l
		JOIN symptoms s ON s.id = l.symptom_id
		WHERE l.user_id = $1 AND l.logged_at >= $2
		GROUP BY l.symptom_id, s.name`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.SymptomCount
	for rows.Next() {
		var c models.SymptomCount
		if err := rows.Scan(&c.SymptomID, &c.Name, &c.Count, &c.FirstSeen); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Totals(ctx context.Context, userID string) (models.LogTotals, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM symptom_logs WHERE user_id = $1),
		(SELECT COUNT(*) FROM mood_logs WHERE user_id = $1),
		(SELECT COUNT(*) FROM medication_logs WHERE user_id = $1),
		(SELECT COUNT(*) FROM habit_logs WHERE user_id = $1)`

	var t models.LogTotals
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&t.Symptoms, &t.Moods, &t.Medications, &t.Habits); err != nil {
		return models.LogTotals{}, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// ActiveDays keys medication logs by created_at; the other kinds by logged_at.
func (r *PostgresRepository) ActiveDays(ctx context.Context, userID string, since time.Time, tz string) ([]string, error) {
	query := `SELECT DISTINCT to_char(a.ts AT TIME ZONE $3, 'YYYY-MM-DD') AS day
		FROM (
			SELECT logged_at AS ts FROM symptom_logs WHERE user_id = $1 AND logged_at >= $2
			UNION ALL
			SELECT logged_at FROM mood_logs WHERE user_id = $1 AND logged_at >= $2
			UNION ALL
			SELECT created_at FROM medication_logs WHERE user_id = $1 AND created_at >= $2
			UNION ALL
			SELECT logged_at FROM habit_logs WHERE user_id = $1 AND logged_at >= $2
		) a
		ORDER BY day DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, since, tz)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return days, nil
}
