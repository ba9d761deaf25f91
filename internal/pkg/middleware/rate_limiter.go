package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prasetyarda/walletwise/internal/pkg/logger"
	"github.com/prasetyarda/walletwise/internal/pkg/models"
	"github.com/prasetyarda/walletwise/internal/pkg/ratelimit"
	"github.com/prasetyarda/walletwise/internal/utils"
)

const (
	// ScopeGlobal throttles all requests against one shared key
	ScopeGlobal = "global"
	// ScopeIP throttles per client address
	ScopeIP = "ip"
)

// RateLimiterConfig contains configuration for the rate limiter middleware
type RateLimiterConfig struct {
	Gate  *ratelimit.Gate
	Scope string // ScopeGlobal or ScopeIP
	Key   string // shared key used with ScopeGlobal
}

// RateLimiterMiddleware gates every request through the shared quota.
// Denials short-circuit with 429 before any handler work; a backend
// failure is fail-closed and surfaces as 500.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := config.Key
			if config.Scope == ScopeIP {
				key = c.RealIP()
			}

			decision, err := config.Gate.Check(c.Request().Context(), key)
			if err != nil {
				logger.Error("Rate limiter unavailable",
					logger.String("key", key),
					logger.Err(err))
				return utils.InternalServerErrorResponse(c, "")
			}

			// Set rate limit headers
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

			if !decision.Allowed {
				if decision.RetryAfter > 0 {
					retryAfter := int64(math.Ceil(decision.RetryAfter.Seconds()))
					c.Response().Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
					c.Response().Header().Set("X-RateLimit-Reset",
						strconv.FormatInt(time.Now().Add(decision.RetryAfter).Unix(), 10))
				}
				return c.JSON(http.StatusTooManyRequests, utils.MessageResponse{
					Message: "Too many requests, please try again later.",
				})
			}

			return next(c)
		}
	}
}

// NewRateLimiterMiddleware builds the middleware from application config.
func NewRateLimiterMiddleware(gate *ratelimit.Gate, cfg models.RateLimitConfig) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		Gate:  gate,
		Scope: cfg.Scope,
		Key:   cfg.Key,
	})
}
