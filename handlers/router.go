package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"findyourseat/security"
)

// HealthChecker reports whether durable state is reachable.
type HealthChecker func(ctx context.Context) error

type RouterConfig struct {
	Session    *SessionHandler
	Movies     *MovieHandler
	Selections *SelectionHandler
	Bookings   *BookingHandler
	Limiter    *security.RateLimiter
	Health     HealthChecker
	Logger     *slog.Logger
}

// NewRouter wires the local API.
func NewRouter(cfg RouterConfig) *echo.Echo {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(requestLogger(cfg.Logger))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		if cfg.Health != nil {
			if err := cfg.Health(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	api := e.Group("/api", cfg.Limiter.AntiBotMiddleware())

	// Session endpoints
	api.POST("/auth/signup", cfg.Session.Signup)
	api.POST("/auth/login", cfg.Session.Login)
	api.POST("/auth/admin/login", cfg.Session.AdminLogin)
	api.POST("/auth/logout", cfg.Session.Logout)
	api.GET("/session", cfg.Session.GetSession)

	// Movie endpoints
	api.GET("/movies", cfg.Movies.ListMovies)
	api.GET("/movies/:id", cfg.Movies.GetMovie)
	api.GET("/layout", cfg.Movies.GetLayout)

	// Seat selection endpoints
	api.GET("/movies/:id/selection", cfg.Selections.GetSelection)
	api.PUT("/movies/:id/selection", cfg.Selections.UpdateSelection)
	api.DELETE("/movies/:id/selection", cfg.Selections.ResetSelection)
	api.POST("/movies/:id/selection/seats/:seat", cfg.Selections.ToggleSeat)
	api.POST("/movies/:id/booking", cfg.Selections.SubmitBooking, cfg.Limiter.SubmitRateLimit())

	// Booking endpoints
	api.GET("/booking", cfg.Bookings.GetBooking)
	api.DELETE("/booking", cfg.Bookings.ClearBooking)
	api.POST("/booking/payment", cfg.Bookings.Pay)
	api.GET("/booking/ticket", cfg.Bookings.GetTicket)
	api.GET("/booking/ticket.pdf", cfg.Bookings.DownloadTicket)
	api.POST("/booking/invoice", cfg.Bookings.GenerateInvoice)
	api.GET("/invoices/:id", cfg.Bookings.GetInvoice)

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency", time.Since(start),
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("request", attrs...)
			return err
		}
	}
}
