//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the slice of pgxpool.Pool the fixtures need, so they also
// accept a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestAppointment inserts one appointment row directly, bypassing the
// usecase layer, for read-side and conflict tests.
func CreateTestAppointment(t *testing.T, db DBLike, service, dateISO string, startMinutes, endMinutes int, status string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO appointments (
			id, service, date_iso, start_minutes, end_minutes, status,
			owner_name, owner_phone, owner_email, pet_type, pet_size, pet_name,
			package_id, reason
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			'Fixture Owner', '555-0100', 'fixture@example.com', 'dog', 'medium', 'Rex',
			$7, $8
		)`,
		id, service, dateISO, startMinutes, endMinutes, status,
		fixturePackage(service), fixtureReason(service),
	)
	require.NoError(t, err)

	return id
}

func fixturePackage(service string) string {
	switch service {
	case "grooming":
		return "basic-bath"
	case "daycare":
		return "full-day"
	default:
		return ""
	}
}

func fixtureReason(service string) string {
	if service == "vet" {
		return "Routine checkup"
	}
	return ""
}

// SeedReferenceData is a no-op hook kept for parity with ResetDB; the
// service catalog is reinstalled by the migration, not by tests.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	var count int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM service_packages").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO service_packages (service, id, name, price_cents, duration_minutes) VALUES
		    ('vet',      'general-checkup', 'General Checkup',    350000, 30),
		    ('grooming', 'basic-bath',      'Basic Bath & Brush', 200000, 60),
		    ('daycare',  'full-day',        'Full Day Care',      250000, NULL)
		ON CONFLICT (service, id) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except migration bookkeeping and the seeded catalog
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('goose_db_version', 'service_packages')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
