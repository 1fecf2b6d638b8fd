package readstore

import (
	"context"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/infra"
	"petcare-hub/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogReadStore struct {
	pool *pgxpool.Pool
}

func NewCatalogReadStore(pool *pgxpool.Pool) queries.CatalogReadStore {
	return &CatalogReadStore{pool: pool}
}

func (s *CatalogReadStore) ListByService(ctx context.Context, service appointment.ServiceType) ([]*queries.PackageView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT service, id, name, price_cents, duration_minutes
		FROM service_packages
		WHERE service = $1
		ORDER BY price_cents`,
		service.String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("list service packages", err)
	}
	defer rows.Close()

	var views []*queries.PackageView
	for rows.Next() {
		var (
			v        queries.PackageView
			duration pgtype.Int4
		)
		if err := rows.Scan(&v.Service, &v.ID, &v.Name, &v.PriceCents, &duration); err != nil {
			return nil, infra.WrapRepoErr("scan service package", err)
		}
		if duration.Valid {
			v.DurationMinutes = &duration.Int32
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("read service packages", err)
	}
	return views, nil
}
