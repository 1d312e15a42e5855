package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thms/theatre-management/internal/repository"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestCustomerHandler(db *sql.DB) *CustomerHandler {
	return &CustomerHandler{
		MovieRepo:     repository.NewMovieRepo(db),
		TheatreRepo:   repository.NewTheatreRepo(db),
		SeatRepo:      repository.NewSeatRepo(db),
		ScreeningRepo: repository.NewScreeningRepo(db),
		BookingRepo:   repository.NewBookingRepo(db),
	}
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "screening_id", "booking_number", "payment_method", "payment_status", "total_amount_cents", "created_at", "updated_at"})
}

func screeningRowsAt(id uint64, startsAt time.Time) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "movie_id", "theatre_id", "screen_number", "starts_at", "ends_at", "base_price_cents", "format", "created_at", "updated_at"}).
		AddRow(id, 1, 3, 2, startsAt, startsAt.Add(2*time.Hour), 1000, "STANDARD", now, now)
}

// A booking whose screening has already started cannot be cancelled; the
// request fails with 409 and no status update is written.
func TestCancelBookingAfterScreeningStarted(t *testing.T) {
	db, mock := newMockDB(t)
	h := newTestCustomerHandler(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \? FOR UPDATE`).
		WithArgs(7).
		WillReturnRows(bookingRows().
			AddRow(7, 3, 5, "THM-1A2B3C4D", "CARD", "COMPLETED", 2500, now, now))
	mock.ExpectQuery(`SELECT (.+) FROM screenings WHERE id = \?`).
		WithArgs(5).
		WillReturnRows(screeningRowsAt(5, now.Add(-time.Hour)))
	mock.ExpectRollback()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set("user_id", uint64(3))

	require.NoError(t, h.CancelBooking(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "screening already started")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Cancelling someone else's booking is forbidden and writes nothing.
func TestCancelBookingNotOwner(t *testing.T) {
	db, mock := newMockDB(t)
	h := newTestCustomerHandler(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \? FOR UPDATE`).
		WithArgs(7).
		WillReturnRows(bookingRows().
			AddRow(7, 99, 5, "THM-1A2B3C4D", "CARD", "COMPLETED", 2500, now, now))
	mock.ExpectRollback()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set("user_id", uint64(3))

	require.NoError(t, h.CancelBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
