package components

import (
	"petcare-hub/internal/infra/readstore"
	"petcare-hub/internal/infra/repository"
	"petcare-hub/internal/infra/uow"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
		repository.NewAppointmentRepository,
		repository.NewNotificationRepository,
		readstore.NewAppointmentReadStore,
		readstore.NewCatalogReadStore,
	),
)
