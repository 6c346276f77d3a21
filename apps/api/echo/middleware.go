package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cumaze/registro-consorcio/services/metrics"
)

// metricsMiddleware records every request under its route pattern, not its raw path.
func metricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			code := ctx.Response().Status
			if err != nil {
				code = http.StatusInternalServerError
				if herr, ok := err.(*echo.HTTPError); ok {
					code = herr.Code
				}
			}
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			m.RequestDone(ctx.Request().Method, route, strconv.Itoa(code), time.Since(start))
			return err
		}
	}
}
