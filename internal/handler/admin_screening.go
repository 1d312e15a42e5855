package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/model"
	"github.com/thms/theatre-management/internal/repository"
)

type screeningReq struct {
	MovieID        uint64 `json:"movie_id"`
	TheatreID      uint64 `json:"theatre_id"`
	ScreenNumber   uint32 `json:"screen_number"`
	StartsAt       string `json:"starts_at"` // RFC 3339
	Format         string `json:"format"`
	BasePriceCents uint32 `json:"base_price_cents"`
}

// buildScreening validates a screening request against the movie and
// theatre it references and derives the end time from the movie
// duration.  It returns a ready-to-persist screening or an error
// message with its HTTP status.
func (h *AdminHandler) buildScreening(c echo.Context, req screeningReq) (*model.Screening, int, string) {
	if req.MovieID == 0 || req.TheatreID == 0 || req.ScreenNumber == 0 {
		return nil, http.StatusBadRequest, "movie_id, theatre_id and screen_number are required"
	}
	if req.BasePriceCents == 0 {
		return nil, http.StatusBadRequest, "base_price_cents must be positive"
	}
	format := strings.ToUpper(strings.TrimSpace(req.Format))
	if format == "" {
		format = model.FormatStandard
	}
	if !model.ValidFormat(format) {
		return nil, http.StatusBadRequest, "invalid format"
	}
	startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartsAt))
	if err != nil {
		return nil, http.StatusBadRequest, "starts_at must be RFC 3339"
	}
	startsAt = startsAt.UTC()

	ctx := c.Request().Context()
	movie, err := h.MovieRepo.GetByID(ctx, req.MovieID)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return nil, http.StatusNotFound, "movie not found"
		}
		return nil, http.StatusInternalServerError, "load movie failed"
	}
	theatre, err := h.TheatreRepo.GetByID(ctx, req.TheatreID)
	if err != nil {
		if err == repository.ErrTheatreNotFound {
			return nil, http.StatusNotFound, "theatre not found"
		}
		return nil, http.StatusInternalServerError, "load theatre failed"
	}
	if req.ScreenNumber > theatre.TotalScreens {
		return nil, http.StatusBadRequest, "screen_number exceeds theatre screens"
	}

	return &model.Screening{
		MovieID:        req.MovieID,
		TheatreID:      req.TheatreID,
		ScreenNumber:   req.ScreenNumber,
		StartsAt:       startsAt,
		EndsAt:         startsAt.Add(time.Duration(movie.DurationMinutes) * time.Minute),
		Format:         format,
		BasePriceCents: req.BasePriceCents,
	}, 0, ""
}

// CreateScreening handles POST /v1/admin/screenings.  The screening is
// rejected with 409 when its [starts_at, ends_at) window intersects an
// existing screening on the same theatre screen; back-to-back times are
// allowed.
func (h *AdminHandler) CreateScreening(c echo.Context) error {
	var req screeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s, status, msg := h.buildScreening(c, req)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	conflicts, err := h.ScreeningRepo.FindOverlapping(ctx, s.TheatreID, s.ScreenNumber, s.StartsAt, s.EndsAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "overlap check failed"})
	}
	if len(conflicts) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "screening time overlaps existing screening",
			"conflicts": conflicts,
		})
	}
	if err := h.ScreeningRepo.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create screening failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateScreening handles PUT /v1/admin/screenings/:id.  The end time is
// recomputed from the (possibly new) movie duration and the overlap
// check reruns against every other screening on the target screen.
func (h *AdminHandler) UpdateScreening(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	var req screeningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx := c.Request().Context()
	if _, err := h.ScreeningRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrScreeningNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screening failed"})
	}

	s, status, msg := h.buildScreening(c, req)
	if msg != "" {
		return c.JSON(status, echo.Map{"error": msg})
	}
	s.ID = id

	// The row being updated must not conflict with itself.
	conflicts, err := h.ScreeningRepo.FindOverlappingExcluding(ctx, s.TheatreID, s.ScreenNumber, s.StartsAt, s.EndsAt, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "overlap check failed"})
	}
	if len(conflicts) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "screening time overlaps existing screening",
			"conflicts": conflicts,
		})
	}
	if err := h.ScreeningRepo.Update(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update screening failed"})
	}
	fresh, err := h.ScreeningRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screening failed"})
	}
	return c.JSON(http.StatusOK, fresh)
}

// DeleteScreening handles DELETE /v1/admin/screenings/:id.  Refused
// while bookings reference the screening.
func (h *AdminHandler) DeleteScreening(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	switch err := h.ScreeningRepo.Delete(c.Request().Context(), id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrScreeningNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "screening has bookings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete screening failed"})
	}
}
