package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"petcare-hub/internal/domain/appointment"
	"petcare-hub/internal/handler/api"
	"petcare-hub/internal/handler/middleware"
	"petcare-hub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// AppointmentHandlers carries one handler per bookable service.
type AppointmentHandlers struct {
	Vet      *api.AppointmentHandler
	Grooming *api.AppointmentHandler
	Daycare  *api.AppointmentHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, appointments AppointmentHandlers, scheduleHandler *api.ScheduleHandler, catalogHandler *api.CatalogHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, appointments, scheduleHandler, catalogHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, appointments AppointmentHandlers, scheduleHandler *api.ScheduleHandler, catalogHandler *api.CatalogHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addServiceRoutes(apiGroup, "/vet", appointments.Vet)
		addServiceRoutes(apiGroup, "/grooming", appointments.Grooming)
		addServiceRoutes(apiGroup, "/daycare", appointments.Daycare)

		// The vet catalog lists visit types rather than packages; the
		// frontend historically called them services.
		apiGroup.GET("/vet/services", catalogHandler.List(appointment.ServiceVet))
		apiGroup.GET("/grooming/packages", catalogHandler.List(appointment.ServiceGrooming))
		apiGroup.GET("/daycare/packages", catalogHandler.List(appointment.ServiceDaycare))

		schedule := apiGroup.Group("/schedule")
		{
			addRoutes(schedule, []route{
				{Method: http.MethodGet, Path: "/events", Handler: scheduleHandler.RangeEvents},
			})
		}
	}
}

func addServiceRoutes(g *gin.RouterGroup, prefix string, h *api.AppointmentHandler) {
	svc := g.Group(prefix)
	{
		addRoutes(svc, []route{
			{Method: http.MethodGet, Path: "", Handler: h.ListAll},
			{Method: http.MethodGet, Path: "/appointments", Handler: h.DayEvents},
			{Method: http.MethodPost, Path: "/appointments", Handler: h.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Delete},
			{Method: http.MethodPatch, Path: "/:id/status", Handler: h.UpdateStatus},
			{Method: http.MethodPut, Path: "/:id/schedule", Handler: h.Reschedule},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
