package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"petcare-hub/internal/pkg/errs"
	"petcare-hub/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; the
// appointments exclusion constraint carries the overlap invariant.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Avoids defer accumulation in the retry loop to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		tx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		if err := fn(ctx, tx); err != nil {
			rollback(ctx, tx)
			if isRetryable(err) && attempt < maxRetries {
				sleepWithJitter(ctx, base, attempt)
				continue
			}
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			rollback(ctx, tx)
			if isRetryable(err) && attempt < maxRetries {
				sleepWithJitter(ctx, base, attempt)
				continue
			}
			return errs.Mark(err, errTransactionCommit)
		}
		return nil
	}

	return errMaxRetriesExceeded
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("failed to rollback transaction", "error", err)
	}
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

func sleepWithJitter(ctx context.Context, base time.Duration, attempt int) {
	backoff := base << attempt
	jitter := time.Duration(rand.Int63n(int64(base)))
	select {
	case <-ctx.Done():
	case <-time.After(backoff + jitter):
	}
}
