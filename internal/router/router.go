package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/handler"
)

// Guards bundles the middleware shared by the route groups.  Zero values
// are replaced by pass-through middleware, which keeps tests short.
type Guards struct {
	JWTSecret string
	RateLimit echo.MiddlewareFunc
	Cache     echo.MiddlewareFunc
}

func (g Guards) limit() echo.MiddlewareFunc {
	if g.RateLimit == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return g.RateLimit
}

func (g Guards) cache() echo.MiddlewareFunc {
	if g.Cache == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return g.Cache
}

// RegisterRoutes registers routes that do not require authentication.
// /healthz reports whether the database answers a ping.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterPublic registers the guest-facing calendar.  Responses go
// through the Redis cache; the rate limiter keys guests by IP.
func RegisterPublic(e *echo.Echo, c *handler.CourtHandler, g Guards) {
	e.GET("/v1/courts/:id/availability", c.Availability, g.limit(), g.cache())
}
