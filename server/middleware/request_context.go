package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/sahayak-ai/sahayak/internal/observability"
)

// RequestContext attaches a per-request logging context with a generated
// request id to every request and echoes the id back in a response header.
func RequestContext(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := observability.NewRequestContext(logger)
			c.Response().Header().Set("X-Request-Id", rc.RequestID)

			ctx := observability.WithRequestContext(c.Request().Context(), rc)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			rc.Info("request handled",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Int("status", c.Response().Status),
				slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
			return err
		}
	}
}
