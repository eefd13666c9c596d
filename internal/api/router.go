package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/route2rise/leaddesk/internal/api/handler"
	"github.com/route2rise/leaddesk/internal/api/middleware"
	"github.com/route2rise/leaddesk/internal/core/ports"
)

// Dependencies carries everything the router needs. Services are built by
// the caller (cmd/api) and injected, keeping store handles out of the core.
type Dependencies struct {
	Mongo       *mongo.Database
	Redis       *redis.Client
	AuthService ports.AuthService
	Leads       ports.LeadService
	Dashboard   ports.DashboardService
	CORSOrigins []string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("leaddesk"))

	authMiddleware := middleware.Auth(deps.AuthService)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify", authHandler.Verify, authMiddleware)

	// --- Lead routes (all behind the token gate) ---
	leadHandler := handler.NewLeadHandler(deps.Leads)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)

	leads := e.Group("/leads", authMiddleware)
	leads.GET("/dashboard/stats", dashboardHandler.Stats)
	leads.POST("", leadHandler.Create)
	leads.GET("", leadHandler.List)
	leads.GET("/:id", leadHandler.Get)
	leads.PUT("/:id", leadHandler.Update)
	leads.POST("/:id/interaction", leadHandler.AddInteraction)
	leads.DELETE("/:id", leadHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
