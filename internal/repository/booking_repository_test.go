package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockBookingRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func TestClaimSeatsTxDuplicateMapsToSeatTaken(t *testing.T) {
	repo, mock := newMockBookingRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(1, 5, "A1", 1, 5, "F5").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '5-F5' for key 'uq_screening_seat'"))
	mock.ExpectRollback()

	tx, err := repo.DB().Begin()
	require.NoError(t, err)
	err = repo.ClaimSeatsTx(context.Background(), tx, 1, 5, []string{"A1", "F5"})
	assert.ErrorIs(t, err, ErrSeatTaken)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimSeatsTxSuccess(t *testing.T) {
	repo, mock := newMockBookingRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(1, 5, "A1", 1, 5, "A2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := repo.DB().Begin()
	require.NoError(t, err)
	require.NoError(t, repo.ClaimSeatsTx(context.Background(), tx, 1, 5, []string{"A1", "A2"}))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetByIDAttachesSortedLabels(t *testing.T) {
	repo, mock := newMockBookingRepo(t)
	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = ?").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "screening_id", "booking_number", "payment_method", "payment_status", "total_amount_cents", "created_at", "updated_at"}).
			AddRow(11, 2, 5, "BKABCDEF", "CARD", "COMPLETED", 2500, now, now))
	mock.ExpectQuery("SELECT seat_label FROM booking_seats WHERE booking_id = ?").
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"seat_label"}).AddRow("F5").AddRow("A1"))

	b, err := repo.GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "BKABCDEF", b.BookingNumber)
	assert.Equal(t, []string{"A1", "F5"}, b.SeatLabels)
	assert.Equal(t, uint32(2500), b.TotalAmountCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetByIDNotFound(t *testing.T) {
	repo, mock := newMockBookingRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = ?").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookedLabels(t *testing.T) {
	repo, mock := newMockBookingRepo(t)
	mock.ExpectQuery("SELECT seat_label FROM booking_seats WHERE screening_id = ?").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"seat_label"}).AddRow("A1").AddRow("A2").AddRow("F5"))

	labels, err := repo.BookedLabels(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "F5"}, labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}
