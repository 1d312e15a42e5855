package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/repository"
)

// SearchScreenings handles GET /v1/search/screenings.  Filters: title,
// theatre, format; time: "upcoming" (default), "active" (still
// running), "any" (no time filter); page/page_size for pagination.
func (h *PublicHandler) SearchScreenings(c echo.Context) error {
	title := strings.TrimSpace(c.QueryParam("title"))
	theatre := strings.TrimSpace(c.QueryParam("theatre"))
	format := strings.TrimSpace(c.QueryParam("format"))
	timeFilter := strings.ToLower(strings.TrimSpace(c.QueryParam("time")))
	if timeFilter == "" {
		timeFilter = "upcoming"
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	ps, _ := strconv.Atoi(c.QueryParam("page_size"))
	if ps < 1 {
		ps = 20
	}
	if ps > 100 {
		ps = 100
	}

	q := repository.ScreeningSearchQuery{
		Title:      title,
		Theatre:    theatre,
		Format:     format,
		TimeFilter: timeFilter,
		Page:       page,
		PageSize:   ps,
	}

	items, total, err := h.ScreeningRepo.SearchUpcoming(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "database_error",
			"message": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":      items,
		"total":     total,
		"page":      page,
		"page_size": ps,
	})
}
