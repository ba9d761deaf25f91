package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Status is the health endpoint response body
type Status struct {
	Status string `json:"status"`
}

// NewHealthHandler creates the handler for the health endpoint
func NewHealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, Status{Status: "ok"})
	}
}

// RegisterHealthEndpoints registers the health check endpoints. These are
// registered on the bare router, outside the rate-limited group: probes
// must keep answering while the gate is throttling or Redis is down.
func RegisterHealthEndpoints(e *echo.Echo) {
	e.GET("/api/health", NewHealthHandler())

	// Kubernetes standard health endpoints
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/ready", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
