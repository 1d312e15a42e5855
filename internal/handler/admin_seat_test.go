package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thms/theatre-management/internal/repository"
)

func newTestAdminHandler(db *sql.DB) *AdminHandler {
	return &AdminHandler{
		MovieRepo:     repository.NewMovieRepo(db),
		GenreRepo:     repository.NewGenreRepo(db),
		TheatreRepo:   repository.NewTheatreRepo(db),
		SeatRepo:      repository.NewSeatRepo(db),
		ScreeningRepo: repository.NewScreeningRepo(db),
		BookingRepo:   repository.NewBookingRepo(db),
	}
}

func theatreRowWithScreens(id uint64, screens uint32) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "name", "address", "phone_number", "email", "description", "total_screens", "image_url", "created_at", "updated_at"}).
		AddRow(id, "Grand Central", "1 Main St", nil, nil, nil, screens, nil, now, now)
}

// Initializing a screen that already has seats fails with 409 and leaves
// the existing layout untouched.
func TestInitializeSeatsExistingLayout(t *testing.T) {
	db, mock := newMockDB(t)
	h := newTestAdminHandler(db)

	mock.ExpectQuery(`SELECT (.+) FROM theatres WHERE id = \?`).
		WithArgs(3).
		WillReturnRows(theatreRowWithScreens(3, 5))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seats WHERE theatre_id = \? AND screen_number = \?`).
		WithArgs(3, 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(60))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/theatres/3/screens/2/seats",
		strings.NewReader(`{"rows":6,"seats_per_row":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "screen")
	c.SetParamValues("3", "2")

	require.NoError(t, h.InitializeSeats(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "seats already initialized")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A screen number beyond the theatre's screen count is rejected before
// any seat work happens.
func TestInitializeSeatsScreenOutOfRange(t *testing.T) {
	db, mock := newMockDB(t)
	h := newTestAdminHandler(db)

	mock.ExpectQuery(`SELECT (.+) FROM theatres WHERE id = \?`).
		WithArgs(3).
		WillReturnRows(theatreRowWithScreens(3, 5))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/theatres/3/screens/9/seats",
		strings.NewReader(`{"rows":6,"seats_per_row":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "screen")
	c.SetParamValues("3", "9")

	require.NoError(t, h.InitializeSeats(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
