package router

import (
	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/handler"
	"github.com/thms/theatre-management/internal/middleware"
	"github.com/thms/theatre-management/internal/model"
)

// RegisterCustomer registers booking endpoints under /v1.  All routes
// require a valid JWT; any role can book.  Seat maps and price quotes
// for guests live on the public router.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleUser),
	)
	g.POST("/screenings/:id/bookings", h.CreateBooking)
	g.POST("/screenings/:id/price-quote", h.PriceQuote)
	g.GET("/my-bookings", h.ListMyBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
}
