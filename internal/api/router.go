package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/rushhour/scheduling/docs"
	"github.com/rushhour/scheduling/internal/api/handler"
	"github.com/rushhour/scheduling/internal/api/middleware"
	"github.com/rushhour/scheduling/internal/core/ports"
	"github.com/rushhour/scheduling/internal/core/service"
	"github.com/rushhour/scheduling/internal/pkg/validation"
)

// Dependencies are the collaborators the HTTP surface is built from.
type Dependencies struct {
	Tokens middleware.TokenParser

	Auth         ports.AuthService
	Accounts     ports.AccountService
	Providers    ports.ProviderService
	Employees    ports.EmployeeService
	Clients      ports.ClientService
	Activities   ports.ActivityService
	Appointments ports.AppointmentService
	Audit        ports.AuditService

	Postgres handler.Pinger
	Mongo    *mongo.Database
	Redis    *redis.Client

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("rushhour"))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Postgres, deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Accounts)
	api.POST("/auth", authHandler.Login)

	secured := api.Group("", middleware.Auth(deps.Tokens))
	allow := func(op service.Operation) echo.MiddlewareFunc {
		return middleware.RBAC(service.AllowedRoles(op)...)
	}

	secured.PATCH("/accounts/password", authHandler.ChangePassword)

	providers := handler.NewProviderHandler(deps.Providers)
	secured.POST("/providers", providers.Create, allow(service.OpProviderCreate))
	secured.GET("/providers", providers.List, allow(service.OpProviderList))
	secured.GET("/providers/:id", providers.Get, allow(service.OpProviderRead))
	secured.PUT("/providers/:id", providers.Update, allow(service.OpProviderUpdate))
	secured.DELETE("/providers/:id", providers.Delete, allow(service.OpProviderDelete))

	employees := handler.NewEmployeeHandler(deps.Employees)
	secured.POST("/employees", employees.Create, allow(service.OpEmployeeCreate))
	secured.GET("/employees", employees.List, allow(service.OpEmployeeList))
	secured.GET("/employees/:id", employees.Get, allow(service.OpEmployeeRead))
	secured.PUT("/employees/:id", employees.Update, allow(service.OpEmployeeUpdate))
	secured.DELETE("/employees/:id", employees.Delete, allow(service.OpEmployeeDelete))

	clients := handler.NewClientHandler(deps.Clients)
	secured.POST("/clients", clients.Create, allow(service.OpClientCreate))
	secured.GET("/clients", clients.List, allow(service.OpClientList))
	secured.GET("/clients/:id", clients.Get, allow(service.OpClientRead))
	secured.PUT("/clients/:id", clients.Update, allow(service.OpClientUpdate))
	secured.DELETE("/clients/:id", clients.Delete, allow(service.OpClientDelete))

	activities := handler.NewActivityHandler(deps.Activities)
	secured.POST("/activities", activities.Create, allow(service.OpActivityCreate))
	secured.GET("/activities", activities.List, allow(service.OpActivityList))
	secured.GET("/activities/:id", activities.Get, allow(service.OpActivityRead))
	secured.PUT("/activities/:id", activities.Update, allow(service.OpActivityUpdate))
	secured.DELETE("/activities/:id", activities.Delete, allow(service.OpActivityDelete))

	appointments := handler.NewAppointmentHandler(deps.Appointments)
	secured.POST("/appointments", appointments.Create, allow(service.OpAppointmentCreate))
	secured.GET("/appointments", appointments.List, allow(service.OpAppointmentList))
	secured.GET("/appointments/:id", appointments.Get, allow(service.OpAppointmentRead))
	secured.PUT("/appointments/:id", appointments.Update, allow(service.OpAppointmentUpdate))
	secured.DELETE("/appointments/:id", appointments.Delete, allow(service.OpAppointmentDelete))

	audit := handler.NewAuditHandler(deps.Audit)
	secured.GET("/audit", audit.List, allow(service.OpAuditList))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
