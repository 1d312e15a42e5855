package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/thms/theatre-management/internal/model"
	"github.com/thms/theatre-management/internal/repository"
)

type theatreReq struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	PhoneNumber  *string `json:"phone_number"`
	Email        *string `json:"email"`
	Description  *string `json:"description"`
	TotalScreens uint32  `json:"total_screens"`
	ImageURL     *string `json:"image_url"`
}

func (r *theatreReq) toModel() (*model.Theatre, string) {
	name := strings.TrimSpace(r.Name)
	addr := strings.TrimSpace(r.Address)
	if name == "" || addr == "" {
		return nil, "name and address are required"
	}
	if r.TotalScreens == 0 {
		return nil, "total_screens must be positive"
	}
	return &model.Theatre{
		Name:         name,
		Address:      addr,
		PhoneNumber:  r.PhoneNumber,
		Email:        r.Email,
		Description:  r.Description,
		TotalScreens: r.TotalScreens,
		ImageURL:     r.ImageURL,
	}, ""
}

// CreateTheatre handles POST /v1/admin/theatres.
func (h *AdminHandler) CreateTheatre(c echo.Context) error {
	var req theatreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.TheatreRepo.Create(c.Request().Context(), t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create theatre failed"})
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateTheatre handles PUT /v1/admin/theatres/:id.  Shrinking
// total_screens below a screen that already has screenings is refused.
func (h *AdminHandler) UpdateTheatre(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theatre id"})
	}
	var req theatreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	t, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	t.ID = id

	ctx := c.Request().Context()
	screenings, err := h.ScreeningRepo.ListByTheatre(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load screenings failed"})
	}
	for _, s := range screenings {
		if s.ScreenNumber > t.TotalScreens {
			return c.JSON(http.StatusConflict, echo.Map{"error": "total_screens below a screen with screenings"})
		}
	}

	if err := h.TheatreRepo.Update(ctx, t); err != nil {
		if err == repository.ErrTheatreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update theatre failed"})
	}
	fresh, err := h.TheatreRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load theatre failed"})
	}
	return c.JSON(http.StatusOK, fresh)
}

// DeleteTheatre handles DELETE /v1/admin/theatres/:id.
func (h *AdminHandler) DeleteTheatre(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theatre id"})
	}
	switch err := h.TheatreRepo.Delete(c.Request().Context(), id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrTheatreNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "theatre has screenings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete theatre failed"})
	}
}
