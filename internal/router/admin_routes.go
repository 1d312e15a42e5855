package router

import (
	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/handler"
	"github.com/thms/theatre-management/internal/middleware"
	"github.com/thms/theatre-management/internal/model"
)

// RegisterAdmin registers catalog and inventory management endpoints
// under /v1/admin.  Movies, genres, theatres, seat layouts and booking
// administration require the ADMIN role; screening scheduling also
// accepts MANAGER.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	admin := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Movies & genres ----
	admin.POST("/movies", h.CreateMovie)
	admin.PUT("/movies/:id", h.UpdateMovie)
	admin.PATCH("/movies/:id", h.UpdateMovie)
	admin.DELETE("/movies/:id", h.DeleteMovie)
	admin.POST("/genres", h.CreateGenre)
	admin.DELETE("/genres/:id", h.DeleteGenre)

	// ---- Theatres ----
	admin.POST("/theatres", h.CreateTheatre)
	admin.PUT("/theatres/:id", h.UpdateTheatre)
	admin.PATCH("/theatres/:id", h.UpdateTheatre)
	admin.DELETE("/theatres/:id", h.DeleteTheatre)

	// ---- Seat layouts ----
	admin.POST("/theatres/:id/screens/:screen/seats", h.InitializeSeats)
	admin.GET("/theatres/:id/screens/:screen/seats", h.ListSeats)
	admin.DELETE("/theatres/:id/screens/:screen/seats", h.DeleteSeats)
	admin.PUT("/theatres/:id/screens/:screen/rows/:row", h.UpdateRowType)
	admin.PUT("/seats/:id", h.UpdateSeatType)

	// ---- Bookings ----
	admin.GET("/screenings/:id/bookings", h.ListBookingsByScreening)
	admin.GET("/bookings", h.ListBookingsByStatus)
	admin.GET("/bookings/number/:number", h.GetBookingByNumber)
	admin.POST("/bookings/:id/refund", h.RefundBooking)
	admin.DELETE("/bookings/:id", h.DeleteBooking)

	// Scheduling is shared with managers.
	sched := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleManager),
	)
	sched.POST("/screenings", h.CreateScreening)
	sched.PUT("/screenings/:id", h.UpdateScreening)
	sched.PATCH("/screenings/:id", h.UpdateScreening)
	sched.DELETE("/screenings/:id", h.DeleteScreening)
}
