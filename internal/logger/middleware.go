package logger

import (
	"time"

	"github.com/labstack/echo/v4"
)

// EchoMiddleware attaches a request scoped logger to the request context and
// writes one access line per request. It expects middleware.RequestID to run first.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := WithLogger(req.Context(), map[string]interface{}{
				"request_id": requestID,
				"method":     req.Method,
				"path":       req.URL.Path,
			})
			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			l := getLogger(ctx)
			status := c.Response().Status
			evt := l.Info()
			if status >= 500 {
				evt = l.Error().Err(err)
			} else if status >= 400 {
				evt = l.Warn()
			}
			evt.Int("status", status).
				Dur("latency", time.Since(start)).
				Int64("bytes_out", c.Response().Size).
				Msg("request handled")
			return nil
		}
	}
}
