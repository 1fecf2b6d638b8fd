package components

import (
	"petcare-hub/internal/pkg/clock"
	"petcare-hub/internal/usecase/commands"
	"petcare-hub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAppointmentQueries,
		queries.NewCatalogQueries,
		queries.NewScheduleQueries,
		queries.NewRangeLoader,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAppointmentCommands,
	),
)
