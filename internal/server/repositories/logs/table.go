package logs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/dmitrijs2005/healthlog/internal/dbx"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
)

type scanner interface{ Scan(...any) error }

// table describes one log table. Columns are qualified with the alias "l"
// for the log row and "r" for the joined definition.
type table struct {
	name           string
	join           string
	columns        string
	timeColumn     string
	resourceColumn string
	resource       string
}

func (t table) from() string {
	return t.name + ` l ` + t.join
}

func (t table) where(userID string, f models.LogFilter) *dbx.Where {
	w := dbx.NewWhere("l.user_id = ?", userID)
	if f.From != nil {
		w.And(t.timeColumn+" >= ?", *f.From)
	}
	if f.To != nil {
		w.And(t.timeColumn+" <= ?", *f.To)
	}
	if f.ResourceID != "" && t.resourceColumn != "" {
		w.And(t.resourceColumn+" = ?", f.ResourceID)
	}
	return w
}

func listRows[T any](ctx context.Context, db dbx.DBTX, t table, userID string, f models.LogFilter, scan func(scanner) (T, error)) ([]T, int, error) {
	w := t.where(userID, f)

	var total int
	countQuery := `SELECT COUNT(*) FROM ` + t.name + ` l WHERE ` + w.SQL()
	if err := db.QueryRowContext(ctx, countQuery, w.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + t.columns + ` FROM ` + t.from() + `
		WHERE ` + w.SQL() + `
		ORDER BY ` + t.timeColumn + ` DESC, l.id DESC
		LIMIT ` + w.Arg(f.Limit) + ` OFFSET ` + w.Arg(f.Offset())

	rows, err := db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return items, total, nil
}

func getRow[T any](ctx context.Context, db dbx.DBTX, t table, id string, scan func(scanner) (T, error)) (T, error) {
	query := `SELECT ` + t.columns + ` FROM ` + t.from() + ` WHERE l.id = $1`
	item, err := scan(db.QueryRowContext(ctx, query, id))
	if err != nil {
		var zero T
		return zero, t.mapErr(err)
	}
	return item, nil
}

// updateRow runs set (a "col = COALESCE($2, col), ..." list) against the
// row with id $1 and re-reads it joined with its definition.
func updateRow[T any](ctx context.Context, db dbx.DBTX, t table, id, set string, args []any, scan func(scanner) (T, error)) (T, error) {
	query := `WITH l AS (
			UPDATE ` + t.name + ` SET ` + set + `
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + t.columns + ` FROM l ` + t.join

	item, err := scan(db.QueryRowContext(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		var zero T
		return zero, t.mapErr(err)
	}
	return item, nil
}

func deleteRow(ctx context.Context, db dbx.DBTX, t table, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+t.name+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.NewNotFound(t.resource)
	}
	return nil
}

func (t table) mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.NewNotFound(t.resource)
	}
	return fmt.Errorf("db error: %w", err)
}
