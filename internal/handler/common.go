package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/repository"
)

// AdminHandler bundles the repositories used by catalog and inventory
// management endpoints.  Routes using it sit behind the ADMIN role (or
// ADMIN/MANAGER for scheduling).
type AdminHandler struct {
	MovieRepo     *repository.MovieRepo
	GenreRepo     *repository.GenreRepo
	TheatreRepo   *repository.TheatreRepo
	SeatRepo      *repository.SeatRepo
	ScreeningRepo *repository.ScreeningRepo
	BookingRepo   *repository.BookingRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency
// is nil.
func NewAdminHandler(movieRepo *repository.MovieRepo, genreRepo *repository.GenreRepo, theatreRepo *repository.TheatreRepo, seatRepo *repository.SeatRepo, screeningRepo *repository.ScreeningRepo, bookingRepo *repository.BookingRepo) *AdminHandler {
	if movieRepo == nil || genreRepo == nil || theatreRepo == nil || seatRepo == nil || screeningRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		MovieRepo:     movieRepo,
		GenreRepo:     genreRepo,
		TheatreRepo:   theatreRepo,
		SeatRepo:      seatRepo,
		ScreeningRepo: screeningRepo,
		BookingRepo:   bookingRepo,
	}
}

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT claims decode numbers as float64, so several
// representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the named path parameter as a positive uint64.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// normalizeSeatLabels uppercases, trims, and deduplicates a seat label
// selection, preserving request order.
func normalizeSeatLabels(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, lbl := range raw {
		lbl = strings.ToUpper(strings.TrimSpace(lbl))
		if lbl == "" {
			continue
		}
		if _, ok := seen[lbl]; ok {
			continue
		}
		seen[lbl] = struct{}{}
		out = append(out, lbl)
	}
	return out
}

// intersectLabels returns the wanted labels that are already present in
// taken, in wanted order.
func intersectLabels(wanted, taken []string) []string {
	set := make(map[string]struct{}, len(taken))
	for _, lbl := range taken {
		set[lbl] = struct{}{}
	}
	var out []string
	for _, lbl := range wanted {
		if _, ok := set[lbl]; ok {
			out = append(out, lbl)
		}
	}
	return out
}
