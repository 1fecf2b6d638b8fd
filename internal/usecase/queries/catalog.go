package queries

import (
	"context"

	"petcare-hub/internal/domain/appointment"
)

type CatalogReadStore interface {
	ListByService(ctx context.Context, service appointment.ServiceType) ([]*PackageView, error)
}

// CatalogQueries serves the read-only package/service price list shown on
// the booking forms.
type CatalogQueries interface {
	ListPackages(ctx context.Context, service appointment.ServiceType) ([]*PackageView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) ListPackages(ctx context.Context, service appointment.ServiceType) ([]*PackageView, error) {
	return q.store.ListByService(ctx, service)
}
