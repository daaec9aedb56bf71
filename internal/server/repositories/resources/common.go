package resources

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

// visibleTo restricts a definition table to system defaults and the
// requester's own rows. Tables without defaults only match the requester.
func visibleTo(userID string, withDefaults bool, f models.ResourceFilter) *dbx.Where {
	var w *dbx.Where
	if withDefaults {
		w = dbx.NewWhere("(user_id IS NULL OR user_id = ?)", userID)
	} else {
		w = dbx.NewWhere("user_id = ?", userID)
	}
	if f.Active != nil {
		w.And("active = ?", *f.Active)
	}
	return w
}

// list runs the COUNT and the paged SELECT for a definition table. The
// scan callback is invoked once per row.
func list(ctx context.Context, db dbx.DBTX, table, columns string, w *dbx.Where, f models.ResourceFilter, scan func(scanner) error) (int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM ` + table + ` WHERE ` + w.SQL()
	if err := db.QueryRowContext(ctx, countQuery, w.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + columns + ` FROM ` + table + `
		WHERE ` + w.SQL() + `
		ORDER BY (user_id IS NULL) DESC, name ASC, id ASC
		LIMIT ` + w.Arg(f.Limit) + ` OFFSET ` + w.Arg(f.Offset())

	rows, err := db.QueryContext(ctx, query, w.Args()...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return 0, fmt.Errorf("db error: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func mapRowErr(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.NewNotFound(resource)
	}
	return fmt.Errorf("db error: %w", err)
}

func deleteByID(ctx context.Context, db dbx.DBTX, table, id, resource string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.NewNotFound(resource)
	}
	return nil
}
