package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/model"
	"github.com/thms/theatre-management/internal/repository"
)

// screenParams parses the :id (theatre) and :screen path parameters and
// checks the screen number against the theatre's screen count.
func (h *AdminHandler) screenParams(c echo.Context) (uint64, uint32, int, string) {
	theatreID, ok := pathID(c, "id")
	if !ok {
		return 0, 0, http.StatusBadRequest, "invalid theatre id"
	}
	screen64, err := strconv.ParseUint(c.Param("screen"), 10, 32)
	if err != nil || screen64 == 0 {
		return 0, 0, http.StatusBadRequest, "invalid screen number"
	}
	screen := uint32(screen64)

	theatre, err := h.TheatreRepo.GetByID(c.Request().Context(), theatreID)
	if err != nil {
		if err == repository.ErrTheatreNotFound {
			return 0, 0, http.StatusNotFound, "theatre not found"
		}
		return 0, 0, http.StatusInternalServerError, "load theatre failed"
	}
	if screen > theatre.TotalScreens {
		return 0, 0, http.StatusBadRequest, "screen number exceeds theatre screens"
	}
	return theatreID, screen, 0, ""
}

// InitializeSeats handles POST /v1/admin/theatres/:id/screens/:screen/seats.
// It generates the full seat grid for one screen: front rows standard,
// middle band premium, back rows VIP, plus an accessible pair in the
// middle row.  A screen that already has seats is refused with 409; the
// existing layout must be deleted first.
func (h *AdminHandler) InitializeSeats(c echo.Context) error {
	theatreID, screen, status, msg := h.screenParams(c)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}
	var req struct {
		Rows        int `json:"rows"`
		SeatsPerRow int `json:"seats_per_row"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rows < 4 || req.Rows > 26 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rows must be between 4 and 26"})
	}
	if req.SeatsPerRow < 2 || req.SeatsPerRow > 50 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats_per_row must be between 2 and 50"})
	}

	seats := repository.BuildSeatGrid(theatreID, screen, req.Rows, req.SeatsPerRow)
	if err := h.SeatRepo.CreateGrid(c.Request().Context(), theatreID, screen, seats); err != nil {
		if err == repository.ErrSeatsExist {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seats already initialized for screen"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create seats failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"theatre_id":    theatreID,
		"screen_number": screen,
		"created":       len(seats),
	})
}

// ListSeats handles GET /v1/admin/theatres/:id/screens/:screen/seats.
func (h *AdminHandler) ListSeats(c echo.Context) error {
	theatreID, screen, status, msg := h.screenParams(c)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}
	seats, err := h.SeatRepo.ListByScreen(c.Request().Context(), theatreID, screen)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": seats})
}

// DeleteSeats handles DELETE /v1/admin/theatres/:id/screens/:screen/seats.
// The whole layout is removed so it can be re-initialized with different
// dimensions.
func (h *AdminHandler) DeleteSeats(c echo.Context) error {
	theatreID, screen, status, msg := h.screenParams(c)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}
	n, err := h.SeatRepo.DeleteByScreen(c.Request().Context(), theatreID, screen)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete seats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}

type seatTypeReq struct {
	SeatType        string  `json:"seat_type"`
	PriceMultiplier float64 `json:"price_multiplier"`
}

func (r *seatTypeReq) validate() string {
	r.SeatType = strings.ToUpper(strings.TrimSpace(r.SeatType))
	if !model.ValidSeatType(r.SeatType) {
		return "invalid seat_type"
	}
	if r.PriceMultiplier <= 0 {
		return "price_multiplier must be positive"
	}
	return ""
}

// UpdateSeatType handles PUT /v1/admin/seats/:id.  Changing a seat's
// type or multiplier affects future price computations only; existing
// bookings keep their stored totals.
func (h *AdminHandler) UpdateSeatType(c echo.Context) error {
	seatID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var req seatTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.SeatRepo.UpdateType(c.Request().Context(), seatID, req.SeatType, req.PriceMultiplier); err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update seat failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// UpdateRowType handles PUT /v1/admin/theatres/:id/screens/:screen/rows/:row.
// It retypes every seat in one row at once.
func (h *AdminHandler) UpdateRowType(c echo.Context) error {
	theatreID, screen, status, msg := h.screenParams(c)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}
	row := strings.ToUpper(strings.TrimSpace(c.Param("row")))
	if row == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid row label"})
	}
	var req seatTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if m := req.validate(); m != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": m})
	}
	if err := h.SeatRepo.UpdateRowType(c.Request().Context(), theatreID, screen, row, req.SeatType, req.PriceMultiplier); err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "row has no seats"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update row failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}
