package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careslot/booking-api/internal/metrics"
)

// Limiter is the interface the middleware uses to count requests.
type Limiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}

// RateLimit rejects callers exceeding the configured request budget.
// Requests are keyed by client IP. When the limiter itself fails the
// request is let through: availability over strictness.
func RateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
