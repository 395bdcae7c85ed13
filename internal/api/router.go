package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestor-confeitaria/assistant-api/internal/api/handler"
	"github.com/gestor-confeitaria/assistant-api/internal/api/middleware"
	"github.com/gestor-confeitaria/assistant-api/internal/dispatch"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when no remote cache is configured.
func NewRouter(d *dispatch.Dispatcher, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("confeitaria"))

	// --- Assistant endpoint ---
	assistantHandler := handler.NewAssistantHandler(d)
	e.POST("/v1/assistente", assistantHandler.Handle, middleware.OptionalAuth(jwtSecret))

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
