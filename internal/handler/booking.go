package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/model"
	"github.com/thms/theatre-management/internal/queue"
	"github.com/thms/theatre-management/internal/repository"
	queue_publisher "github.com/thms/theatre-management/internal/service"
	"github.com/thms/theatre-management/internal/utils"
)

// CustomerHandler groups the repositories required to create, price,
// inspect and cancel bookings on behalf of authenticated users.  All
// methods assume JWT authentication already ran; methods return 401 when
// the user ID cannot be extracted from the context.  Booking creation
// and cancellation run inside a transaction so a failure releases
// everything.
type CustomerHandler struct {
	MovieRepo     *repository.MovieRepo
	TheatreRepo   *repository.TheatreRepo
	SeatRepo      *repository.SeatRepo
	ScreeningRepo *repository.ScreeningRepo
	BookingRepo   *repository.BookingRepo

	// PublishEvents disables broker publishing in tests.
	PublishEvents bool
}

// NewCustomerHandler constructs a CustomerHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewCustomerHandler(movieRepo *repository.MovieRepo, theatreRepo *repository.TheatreRepo, seatRepo *repository.SeatRepo, screeningRepo *repository.ScreeningRepo, bookingRepo *repository.BookingRepo) *CustomerHandler {
	if movieRepo == nil || theatreRepo == nil || seatRepo == nil || screeningRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		MovieRepo:     movieRepo,
		TheatreRepo:   theatreRepo,
		SeatRepo:      seatRepo,
		ScreeningRepo: screeningRepo,
		BookingRepo:   bookingRepo,
		PublishEvents: true,
	}
}

// CreateBooking handles POST /v1/screenings/:id/bookings.  The request
// body carries the seat labels and payment method.  Each seat prices at
// round(base x multiplier); the claim is enforced by the unique index on
// booking_seats, so a concurrent booking of the same label loses with
// 409 rather than double-selling the seat.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	screeningID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	var body struct {
		SeatLabels    []string `json:"seat_labels"`
		PaymentMethod string   `json:"payment_method"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	labels := normalizeSeatLabels(body.SeatLabels)
	if len(labels) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_labels is required"})
	}
	method := body.PaymentMethod
	if method == "" {
		method = "CARD"
	}

	ctx := c.Request().Context()
	screening, err := h.ScreeningRepo.GetByID(ctx, screeningID)
	if err != nil {
		if err == repository.ErrScreeningNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screening failed"})
	}
	if !screening.StartsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "screening already started"})
	}

	// Snapshot check so the common case reports exactly which labels are
	// gone.  The unique index on booking_seats is the real guard; this
	// read can race and the claim below still loses correctly.
	booked, err := h.BookingRepo.BookedLabels(ctx, screeningID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booked seats failed"})
	}
	if taken := intersectLabels(labels, booked); len(taken) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "one or more seats already booked",
			"taken": taken,
		})
	}

	multipliers, err := h.SeatRepo.MultiplierMap(ctx, screening.TheatreID, screening.ScreenNumber)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	total := repository.ComputeTotalCents(screening.BasePriceCents, multipliers, labels)

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

	booking := &model.Booking{
		UserID:           userID,
		ScreeningID:      screeningID,
		BookingNumber:    utils.NewBookingNumber(),
		PaymentMethod:    method,
		PaymentStatus:    model.PaymentCompleted,
		TotalAmountCents: total,
		SeatLabels:       labels,
	}
	if err := h.BookingRepo.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := h.BookingRepo.ClaimSeatsTx(ctx, tx, booking.ID, screeningID, labels); err != nil {
		if err == repository.ErrSeatTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "one or more seats already booked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "claim seats failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if h.PublishEvents {
		go h.publishCreated(booking, screening)
	}

	return c.JSON(http.StatusCreated, booking)
}

// publishCreated enriches the booking with movie and theatre names and
// publishes it to the broker.  Failures are logged by the publisher and
// never affect the committed booking.
func (h *CustomerHandler) publishCreated(b *model.Booking, s *model.Screening) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.BookingCreatedEvent{
		BookingID:        b.ID,
		BookingNumber:    b.BookingNumber,
		UserID:           b.UserID,
		ScreeningID:      b.ScreeningID,
		TheatreID:        s.TheatreID,
		ScreenNumber:     s.ScreenNumber,
		StartsAt:         s.StartsAt.Format(time.RFC3339),
		EndsAt:           s.EndsAt.Format(time.RFC3339),
		SeatLabels:       b.SeatLabels,
		PaymentStatus:    b.PaymentStatus,
		TotalAmountCents: b.TotalAmountCents,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if movie, err := h.MovieRepo.GetByID(ctx, s.MovieID); err == nil {
		ev.MovieTitle = movie.Title
	}
	if theatre, err := h.TheatreRepo.GetByID(ctx, s.TheatreID); err == nil {
		ev.TheatreName = theatre.Name
	}
	_ = queue_publisher.PublishBookingCreated(ctx, ev)
}

// PriceQuote handles POST /v1/screenings/:id/price-quote.  It prices a
// seat selection without booking anything: labels found in the seat
// inventory scale the base price by their multiplier, unknown labels
// fall back to the plain base price.
func (h *CustomerHandler) PriceQuote(c echo.Context) error {
	screeningID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	var body struct {
		SeatLabels []string `json:"seat_labels"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	labels := normalizeSeatLabels(body.SeatLabels)
	if len(labels) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_labels is required"})
	}

	ctx := c.Request().Context()
	screening, err := h.ScreeningRepo.GetByID(ctx, screeningID)
	if err != nil {
		if err == repository.ErrScreeningNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screening failed"})
	}
	multipliers, err := h.SeatRepo.MultiplierMap(ctx, screening.TheatreID, screening.ScreenNumber)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	total := repository.ComputeTotalCents(screening.BasePriceCents, multipliers, labels)
	return c.JSON(http.StatusOK, echo.Map{
		"screening_id":       screeningID,
		"seat_labels":        labels,
		"base_price_cents":   screening.BasePriceCents,
		"total_amount_cents": total,
	})
}

// CancelBooking handles DELETE /v1/bookings/:id.  Only the owner can
// cancel, only before the screening starts, and only from a status the
// transition table allows.  Cancellation frees the claimed seats so
// they become bookable again.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
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

	booking, err := h.BookingRepo.GetByIDTx(ctx, tx, bookingID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if booking.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	screening, err := h.ScreeningRepo.GetByID(ctx, booking.ScreeningID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screening failed"})
	}
	if !screening.StartsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "screening already started"})
	}
	if !model.CanTransition(booking.PaymentStatus, model.PaymentCancelled) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":  "booking cannot be cancelled",
			"status": booking.PaymentStatus,
		})
	}
	if err := h.BookingRepo.UpdateStatusTx(ctx, tx, bookingID, model.PaymentCancelled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if err := h.BookingRepo.FreeSeatsTx(ctx, tx, bookingID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release seats failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"booking_id": bookingID,
		"status":     model.PaymentCancelled,
	})
}

// ListMyBookings handles GET /v1/my-bookings.
func (h *CustomerHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id.  Only the owner sees the
// booking; others get 404 rather than confirmation that it exists.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.BookingRepo.GetByID(c.Request().Context(), bookingID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	if booking.UserID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, booking)
}
