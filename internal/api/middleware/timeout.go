package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies the standard timeout to most endpoints
// and a longer one to model-bound endpoints, which legitimately take
// longer than a normal request.
func SelectiveTimeoutConfig(standard, extended time.Duration) echo.MiddlewareFunc {
	standardMW := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: standard})
	extendedMW := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: extended})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		standardNext := standardMW(next)
		extendedNext := extendedMW(next)

		return func(c echo.Context) error {
			if isModelBound(c.Request().URL.Path) {
				return extendedNext(c)
			}
			return standardNext(c)
		}
	}
}

func isModelBound(path string) bool {
	return strings.HasSuffix(path, "/analyze")
}
