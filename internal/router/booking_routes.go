package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/handler"
	"github.com/iliyamo/court-reservation/internal/middleware"
	"github.com/iliyamo/court-reservation/internal/model"
)

// RegisterBookings registers the player-facing booking endpoints under
// /v1.  Every route requires a valid JWT carrying one of the known roles;
// per-booking access is decided by the scheduler.  Static segments such as
// /bookings/me are matched before /bookings/:id by echo's router.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, c *handler.CourtHandler, g Guards) {
	grp := e.Group(
		"/v1",
		middleware.JWTAuth(g.JWTSecret),
		middleware.RequireRole(model.RoleUser, model.RoleCourtOwner, model.RoleAdmin),
		g.limit(),
	)
	grp.POST("/bookings", b.Create)
	grp.GET("/bookings/me", b.Mine)
	grp.GET("/bookings/upcoming", b.Upcoming)
	grp.GET("/bookings/:id", b.Get)
	grp.PATCH("/bookings/:id/status", b.UpdateStatus)
	grp.PATCH("/bookings/:id/confirm", b.Confirm)
	grp.PATCH("/bookings/:id/cancel", b.Cancel)
	grp.PATCH("/bookings/:id/complete", b.Complete)
	grp.GET("/courts/:id/conflicts", c.Conflicts)

	grp.GET("/users/:id/bookings", b.ListByUser, middleware.RequireRole(model.RoleAdmin))
}
