package middleware

import (
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
)

// LoggerMiddleware writes one access log line per request. Successful requests
// are logged at INFO only in debug mode; failures are always logged.
type LoggerMiddleware struct {
	access echo.MiddlewareFunc
}

// NewLoggerMiddleware creates a new logger middleware. Paths are excluded from
// the access log, typically health and metrics probes.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config, quietPaths ...string) *LoggerMiddleware {
	defaultLevel := slog.LevelDebug
	if cfg.Env.Debug {
		defaultLevel = slog.LevelInfo
	}

	access := slogecho.NewWithConfig(logger.With(slog.String("component", "http")), slogecho.Config{
		DefaultLevel:     defaultLevel,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithUserAgent:    true,
		Filters:          []slogecho.Filter{slogecho.IgnorePath(quietPaths...)},
	})

	return &LoggerMiddleware{access: access}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return m.access(func(c echo.Context) error {
		slogecho.AddCustomAttributes(c, slog.String("request_id", deliverycontext.GetRequestID(c)))

		return next(c)
	})
}
