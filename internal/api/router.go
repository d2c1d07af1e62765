package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/seunegocio/marketplace/internal/api/handler"
	"github.com/seunegocio/marketplace/internal/api/metrics"
	"github.com/seunegocio/marketplace/internal/api/middleware"
	"github.com/seunegocio/marketplace/internal/core/domain"
	"github.com/seunegocio/marketplace/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is wired to.
type Dependencies struct {
	Users      ports.UserService
	Businesses ports.BusinessService
	Items      ports.ItemService
	Cart       ports.CartService

	Tokens     ports.TokenVerifier
	Identities ports.PrincipalResolver

	// ReadinessChecks back GET /health/ready.
	ReadinessChecks []handler.DependencyCheck

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(requestLogger(deps.Logger))
	e.Use(middleware.Authenticate(deps.Tokens, deps.Identities, deps.Logger))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.ReadinessChecks...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authed := middleware.RequireAuthenticated()
	sellerOnly := middleware.RequireRole(domain.RoleSeller)
	v1 := e.Group("/v1")

	// --- Users ---
	users := handler.NewUserHandler(deps.Users)
	u := v1.Group("/user")
	u.POST("/register", users.Register)
	u.POST("/login", users.Login)
	u.GET("/me", users.Me, authed)
	u.PATCH("/:id", users.Update, authed)
	u.DELETE("/:id", users.Delete, authed)

	// --- Businesses ---
	businesses := handler.NewBusinessHandler(deps.Businesses)
	b := v1.Group("/businesses")
	b.GET("/categories", businesses.Categories)
	b.GET("/category/:category", businesses.ListByCategory)
	b.GET("/me", businesses.Mine, authed)
	b.GET("/:id", businesses.Get)
	b.POST("", businesses.Create, authed)
	b.PATCH("/:id", businesses.Update, authed)
	b.DELETE("/:id", businesses.Delete, authed)

	// --- Items ---
	items := handler.NewItemHandler(deps.Items)
	i := v1.Group("/items")
	i.GET("", items.List)
	i.GET("/:id", items.Get)
	i.POST("", items.Create, sellerOnly)
	i.PATCH("/:id", items.Update, sellerOnly)
	i.DELETE("/:id", items.Delete, sellerOnly)

	// --- Cart ---
	cart := handler.NewCartHandler(deps.Cart)
	c := v1.Group("/cart", authed)
	c.GET("/me", cart.Mine)
	c.POST("/items", cart.Add)
	c.PATCH("/items/:itemId", cart.SetQuantity)
	c.DELETE("/items/:itemId", cart.Remove)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
