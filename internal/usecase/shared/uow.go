package shared

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// UnitOfWork runs fn inside one database transaction. Conflict pre-check and
// insert must share a transaction so the exclusion constraint is the only
// arbiter under concurrency.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}
