package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/healthlog/internal/common"
	"github.com/dmitrijs2005/healthlog/internal/server/ownership"
)

// loadAuthorized fetches the target row once and checks op against it. A
// missing row is reported as not found before any ownership decision.
func loadAuthorized[T any](ctx context.Context, get func(context.Context, string) (T, error),
	owner func(T) ownership.Owner, op ownership.Operation, kind ownership.Kind, userID, id string) (T, error) {

	row, err := get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := ownership.Authorize(op, kind, owner(row), userID); err != nil {
		var zero T
		return zero, err
	}
	return row, nil
}

// loadVisible fetches a row for reading. Rows the requester may not see are
// reported as resource not found, the same as a missing id.
func loadVisible[T any](ctx context.Context, get func(context.Context, string) (T, error),
	owner func(T) ownership.Owner, kind ownership.Kind, resource, userID, id string) (T, error) {

	row, err := loadAuthorized(ctx, get, owner, ownership.OpRead, kind, userID, id)
	if errors.Is(err, ownership.ErrHidden) {
		return row, common.NewNotFound(resource)
	}
	return row, err
}
