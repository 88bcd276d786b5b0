package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/handler"
	"github.com/iliyamo/court-reservation/internal/middleware"
	"github.com/iliyamo/court-reservation/internal/model"
)

// RegisterOwner registers court-owner and admin endpoints: court
// calendars, statistics, revenue and the overdue report.  Owners are
// further restricted to their own courts by the scheduler.
func RegisterOwner(e *echo.Echo, b *handler.BookingHandler, c *handler.CourtHandler, g Guards) {
	grp := e.Group(
		"/v1",
		middleware.JWTAuth(g.JWTSecret),
		middleware.RequireRole(model.RoleCourtOwner, model.RoleAdmin),
		g.limit(),
	)
	grp.GET("/bookings/overdue", b.Overdue)
	grp.GET("/courts/:id/bookings", c.Bookings)
	grp.GET("/courts/:id/statistics", c.Statistics)
	grp.GET("/owners/:id/bookings", c.OwnerBookings)
	grp.GET("/owners/:id/revenue", c.Revenue)
}
