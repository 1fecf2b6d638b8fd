package components

import (
	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/handler"
	"petcare-hub/internal/handler/api"
	"petcare-hub/internal/usecase/commands"
	"petcare-hub/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewAppointmentHandlers,
		api.NewScheduleHandler,
		api.NewCatalogHandler,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAppointmentHandlers(cmds commands.AppointmentCommands, qs queries.AppointmentQueries) handler.AppointmentHandlers {
	return handler.AppointmentHandlers{
		Vet:      api.NewAppointmentHandler(appointment.ServiceVet, cmds, qs),
		Grooming: api.NewAppointmentHandler(appointment.ServiceGrooming, cmds, qs),
		Daycare:  api.NewAppointmentHandler(appointment.ServiceDaycare, cmds, qs),
	}
}
