package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/storefront/shop-api/internal/api/handler"
	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/internal/core/ports"
	"github.com/storefront/shop-api/internal/infrastructure/http/handlers"
)

// Deps holds everything the router wires into handlers.
type Deps struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Products  ports.ProductService
	Tokens    ports.TokenVerifier
	Readiness *handlers.HealthDependenciesHandler // nil skips /health/ready
	Log       zerolog.Logger

	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "shop",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	gate := middleware.NewGate(deps.Tokens)
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	productHandler := handler.NewProductHandler(deps.Products)

	// The gate runs as route middleware, so authentication and authorization
	// are decided before any body is bound or validated.
	routes := e.Group("/api")

	// --- Auth routes ---
	routes.POST("/auth/register", authHandler.Register)
	routes.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	routes.GET("/users", userHandler.List, gate.Admin())
	routes.GET("/users/:id", userHandler.Get, gate.SelfOrAdmin("id"))
	routes.PUT("/users/:id", userHandler.Update, gate.SelfOrAdmin("id"))
	routes.DELETE("/users/:id", userHandler.Delete, gate.SelfOrAdmin("id"))

	// --- Product routes ---
	routes.GET("/products", productHandler.List)
	routes.GET("/products/:id", productHandler.Get)
	routes.POST("/products", productHandler.Create, gate.Admin())
	routes.PUT("/products/:id", productHandler.Update, gate.Admin())
	routes.DELETE("/products/:id", productHandler.Delete, gate.Admin())

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
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
