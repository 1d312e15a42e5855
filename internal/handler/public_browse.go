// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public browsing API: unauthenticated
// users can list movies, theatres and screenings and inspect seat
// availability without an account.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.
type PublicHandler struct {
	MovieRepo     *repository.MovieRepo
	GenreRepo     *repository.GenreRepo
	TheatreRepo   *repository.TheatreRepo
	SeatRepo      *repository.SeatRepo
	ScreeningRepo *repository.ScreeningRepo
	BookingRepo   *repository.BookingRepo
}

// seatView is one seat in the public seat map, with its computed booking
// availability for a screening.
type seatView struct {
	Label           string  `json:"label"`
	RowLabel        string  `json:"row_label"`
	SeatNumber      uint32  `json:"seat_number"`
	SeatType        string  `json:"seat_type"`
	PriceMultiplier float64 `json:"price_multiplier"`
	PriceCents      uint32  `json:"price_cents"`
	Available       bool    `json:"available"`
}

// seatRowView groups the seat map one physical row at a time.
type seatRowView struct {
	RowLabel string     `json:"row_label"`
	Seats    []seatView `json:"seats"`
}

// ListMovies handles GET /v1/movies with optional ?title= and ?genre_id=
// filters.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	var genreID uint64
	if raw := strings.TrimSpace(c.QueryParam("genre_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre_id"})
		}
		genreID = id
	}
	movies, err := h.MovieRepo.List(c.Request().Context(), c.QueryParam("title"), genreID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// GetMovie handles GET /v1/movies/:id, returning the movie together with
// its genres and upcoming screenings.
func (h *PublicHandler) GetMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	movie, err := h.MovieRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	genres, _ := h.MovieRepo.GenresOf(ctx, id)
	screenings, err := h.ScreeningRepo.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now().UTC()
	upcoming := screenings[:0]
	for _, s := range screenings {
		if s.StartsAt.After(now) {
			upcoming = append(upcoming, s)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie":      movie,
		"genres":     genres,
		"screenings": upcoming,
	})
}

// ListGenres handles GET /v1/genres.
func (h *PublicHandler) ListGenres(c echo.Context) error {
	genres, err := h.GenreRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": genres})
}

// ListTheatres handles GET /v1/theatres.
func (h *PublicHandler) ListTheatres(c echo.Context) error {
	theatres, err := h.TheatreRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": theatres})
}

// GetTheatre handles GET /v1/theatres/:id with its upcoming screenings.
func (h *PublicHandler) GetTheatre(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	theatre, err := h.TheatreRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTheatreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	screenings, err := h.ScreeningRepo.ListByTheatre(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	now := time.Now().UTC()
	upcoming := screenings[:0]
	for _, s := range screenings {
		if s.StartsAt.After(now) {
			upcoming = append(upcoming, s)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"theatre":    theatre,
		"screenings": upcoming,
	})
}

// ListScreenings handles GET /v1/screenings.  Without parameters it
// lists upcoming screenings; ?date=YYYY-MM-DD restricts to screenings
// starting on that UTC day.
func (h *PublicHandler) ListScreenings(c echo.Context) error {
	ctx := c.Request().Context()
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		items, err := h.ScreeningRepo.ListBetween(ctx, day, day.Add(24*time.Hour))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	items, err := h.ScreeningRepo.ListUpcoming(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetScreeningSeats handles GET /v1/screenings/:id/seats.  It returns
// the seat map of the screening's screen with per-seat prices and
// availability; labels claimed by live bookings are unavailable.
func (h *PublicHandler) GetScreeningSeats(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	screening, err := h.ScreeningRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrScreeningNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.SeatRepo.ListByScreen(ctx, screening.TheatreID, screening.ScreenNumber)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	booked, err := h.BookingRepo.BookedLabels(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	taken := make(map[string]struct{}, len(booked))
	for _, lbl := range booked {
		taken[lbl] = struct{}{}
	}

	// Seats come back ordered by row then number, so grouping preserves
	// the physical layout.
	var rows []seatRowView
	for _, s := range seats {
		label := s.Label()
		_, isTaken := taken[label]
		view := seatView{
			Label:           label,
			RowLabel:        s.RowLabel,
			SeatNumber:      s.SeatNumber,
			SeatType:        s.SeatType,
			PriceMultiplier: s.PriceMultiplier,
			PriceCents:      repository.ComputeTotalCents(screening.BasePriceCents, map[string]float64{label: s.PriceMultiplier}, []string{label}),
			Available:       !isTaken,
		}
		if n := len(rows); n == 0 || rows[n-1].RowLabel != s.RowLabel {
			rows = append(rows, seatRowView{RowLabel: s.RowLabel})
		}
		rows[len(rows)-1].Seats = append(rows[len(rows)-1].Seats, view)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"screening": screening,
		"rows":      rows,
	})
}
