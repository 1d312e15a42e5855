package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/model"
	"github.com/thms/theatre-management/internal/repository"
)

// ListBookingsByScreening handles GET /v1/admin/screenings/:id/bookings.
func (h *AdminHandler) ListBookingsByScreening(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	ctx := c.Request().Context()
	if _, err := h.ScreeningRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrScreeningNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screening failed"})
	}
	items, err := h.BookingRepo.ListByScreening(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListBookingsByStatus handles GET /v1/admin/bookings?status=COMPLETED.
func (h *AdminHandler) ListBookingsByStatus(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if !model.ValidPaymentStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	items, err := h.BookingRepo.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBookingByNumber handles GET /v1/admin/bookings/number/:number, the
// lookup used at the box office when a customer shows up with just a
// booking number.
func (h *AdminHandler) GetBookingByNumber(c echo.Context) error {
	number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
	if number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking number"})
	}
	b, err := h.BookingRepo.GetByNumber(c.Request().Context(), number)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, b)
}

// RefundBooking handles POST /v1/admin/bookings/:id/refund.  A refund is
// the only status change admins can apply directly, and only a
// COMPLETED booking can take it.  The refunded booking's seats are
// released like a cancellation.
func (h *AdminHandler) RefundBooking(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := h.BookingRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if !model.CanTransition(b.PaymentStatus, model.PaymentRefunded) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":  "booking cannot be refunded",
			"status": b.PaymentStatus,
		})
	}
	if err := h.BookingRepo.UpdateStatusTx(ctx, tx, id, model.PaymentRefunded); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if err := h.BookingRepo.FreeSeatsTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release seats failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"booking_id": id,
		"status":     model.PaymentRefunded,
	})
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id.  Hard removal for
// cleanup; the seat claims go with it.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.BookingRepo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
