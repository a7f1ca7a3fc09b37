package mockapi

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// NewRouter builds the Echo instance with all routes registered. Each router
// gets its own Prometheus registry for the HTTP middleware metrics so that
// building several instances (tests do) never double-registers collectors;
// /metrics gathers that registry plus the default one carrying the
// collection write counters.
func NewRouter(store *Store, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  namespace,
		Registerer: reg,
	}))

	userHandler := NewUserHandler(store)
	postHandler := NewPostHandler(store)

	// --- Users ---
	e.GET("/users", userHandler.List)
	e.POST("/users", userHandler.Create)
	e.GET("/users/:id", userHandler.Get)
	e.PUT("/users/:id", userHandler.Replace)
	e.PATCH("/users/:id", userHandler.Patch)
	e.DELETE("/users/:id", userHandler.Delete)

	// --- Posts ---
	e.GET("/posts", postHandler.List)
	e.POST("/posts", postHandler.Create)
	e.GET("/posts/:id", postHandler.Get)
	e.PUT("/posts/:id", postHandler.Replace)
	e.PATCH("/posts/:id", postHandler.Patch)
	e.DELETE("/posts/:id", postHandler.Delete)

	// --- Operability ---
	healthHandler := NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))

	return e
}
