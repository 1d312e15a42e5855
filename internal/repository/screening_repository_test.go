package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*ScreeningRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewScreeningRepo(db), mock
}

func screeningRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "movie_id", "theatre_id", "screen_number", "starts_at", "ends_at", "base_price_cents", "format", "created_at", "updated_at"})
}

func TestScreeningGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM screenings WHERE id = ?").
		WithArgs(42).
		WillReturnRows(screeningRows())

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrScreeningNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningFindOverlapping(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(2 * time.Hour)
	end := start.Add(2 * time.Hour)

	rows := screeningRows().
		AddRow(9, 1, 3, 2, start.Add(-time.Hour), start.Add(time.Hour), 1000, "STANDARD", now, now)
	mock.ExpectQuery(`AND NOT \(ends_at <= \? OR starts_at >= \?\)`).
		WithArgs(3, 2, start, end).
		WillReturnRows(rows)

	got, err := repo.FindOverlapping(context.Background(), 3, 2, start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(9), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningFindOverlappingExcludingSkipsSelf(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	mock.ExpectQuery(`id <> \?`).
		WithArgs(3, 2, 9, start, end).
		WillReturnRows(screeningRows())

	got, err := repo.FindOverlappingExcluding(context.Background(), 3, 2, start, end, 9)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScreeningDeleteRefusedWithBookings(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE screening_id = \?`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := repo.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
