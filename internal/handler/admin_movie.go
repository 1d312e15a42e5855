package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/model"
	"github.com/thms/theatre-management/internal/repository"
)

type movieReq struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	DurationMinutes uint32   `json:"duration_minutes"`
	Director        *string  `json:"director"`
	Cast            *string  `json:"cast"`
	ReleaseDate     *string  `json:"release_date"` // YYYY-MM-DD
	PosterImageURL  *string  `json:"poster_image_url"`
	TrailerURL      *string  `json:"trailer_url"`
	Rating          string   `json:"rating"`
	GenreIDs        []uint64 `json:"genre_ids"`
}

func (r *movieReq) toModel() (*model.Movie, string) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return nil, "title is required"
	}
	if r.DurationMinutes == 0 {
		return nil, "duration_minutes must be positive"
	}
	rating := strings.ToUpper(strings.TrimSpace(r.Rating))
	if rating == "" {
		rating = "UNRATED"
	}
	if !model.ValidRating(rating) {
		return nil, "invalid rating"
	}
	m := &model.Movie{
		Title:           title,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Director:        r.Director,
		Cast:            r.Cast,
		PosterImageURL:  r.PosterImageURL,
		TrailerURL:      r.TrailerURL,
		Rating:          rating,
	}
	if r.ReleaseDate != nil && strings.TrimSpace(*r.ReleaseDate) != "" {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(*r.ReleaseDate))
		if err != nil {
			return nil, "release_date must be YYYY-MM-DD"
		}
		m.ReleaseDate = &d
	}
	return m, ""
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	if err := h.MovieRepo.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
	}
	if len(req.GenreIDs) > 0 {
		if err := h.MovieRepo.SetGenres(ctx, m.ID, req.GenreIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "attach genres failed"})
		}
	}
	genres, _ := h.MovieRepo.GenresOf(ctx, m.ID)
	return c.JSON(http.StatusCreated, echo.Map{"movie": m, "genres": genres})
}

// UpdateMovie handles PUT /v1/admin/movies/:id.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	m.ID = id
	ctx := c.Request().Context()
	if err := h.MovieRepo.Update(ctx, m); err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
	}
	if req.GenreIDs != nil {
		if err := h.MovieRepo.SetGenres(ctx, id, req.GenreIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "attach genres failed"})
		}
	}
	fresh, err := h.MovieRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load movie failed"})
	}
	genres, _ := h.MovieRepo.GenresOf(ctx, id)
	return c.JSON(http.StatusOK, echo.Map{"movie": fresh, "genres": genres})
}

// DeleteMovie handles DELETE /v1/admin/movies/:id.  Refused while
// screenings still reference the movie.
func (h *AdminHandler) DeleteMovie(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	switch err := h.MovieRepo.Delete(c.Request().Context(), id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrMovieNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "movie has screenings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete movie failed"})
	}
}

// CreateGenre handles POST /v1/admin/genres.
func (h *AdminHandler) CreateGenre(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	g := &model.Genre{Name: strings.TrimSpace(req.Name)}
	if err := h.GenreRepo.Create(c.Request().Context(), g); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "genre already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create genre failed"})
	}
	return c.JSON(http.StatusCreated, g)
}

// DeleteGenre handles DELETE /v1/admin/genres/:id.
func (h *AdminHandler) DeleteGenre(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
	}
	if err := h.GenreRepo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrGenreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "genre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete genre failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
