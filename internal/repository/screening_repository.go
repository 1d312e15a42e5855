package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/thms/theatre-management/internal/model"
)

// ScreeningRepo manages the screenings schedule.  A screening occupies
// the half-open interval [starts_at, ends_at) on one theatre screen;
// the repository exposes overlap queries so callers can reject
// conflicting schedules before inserting or updating.
type ScreeningRepo struct {
	db *sql.DB
}

// NewScreeningRepo constructs a ScreeningRepo with the given DB handle.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo {
	return &ScreeningRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *ScreeningRepo) DB() *sql.DB {
	return r.db
}

const screeningCols = `id, movie_id, theatre_id, screen_number, starts_at, ends_at, base_price_cents, format, created_at, updated_at`

func scanScreening(row interface{ Scan(...any) error }) (*model.Screening, error) {
	var s model.Screening
	err := row.Scan(&s.ID, &s.MovieID, &s.TheatreID, &s.ScreenNumber, &s.StartsAt, &s.EndsAt, &s.BasePriceCents, &s.Format, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a screening and populates its generated ID and
// timestamp defaults.  Overlap validation happens in the handler before
// this call.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
	const q = `INSERT INTO screenings (movie_id, theatre_id, screen_number, starts_at, ends_at, base_price_cents, format)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.TheatreID, s.ScreenNumber, s.StartsAt, s.EndsAt, s.BasePriceCents, s.Format)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	fresh, err := r.GetByID(ctx, s.ID)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// GetByID retrieves a screening by its ID, returning
// ErrScreeningNotFound when there is no matching row.
func (r *ScreeningRepo) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	s, err := scanScreening(r.db.QueryRowContext(ctx, `SELECT `+screeningCols+` FROM screenings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreeningNotFound
		}
		return nil, err
	}
	return s, nil
}

// FindOverlapping returns screenings on the given theatre screen whose
// [starts_at, ends_at) interval intersects [start, end).  Back-to-back
// screenings where one ends exactly when the next starts do not count
// as overlapping.
func (r *ScreeningRepo) FindOverlapping(ctx context.Context, theatreID uint64, screen uint32, start, end time.Time) ([]model.Screening, error) {
	const q = `SELECT ` + screeningCols + `
	           FROM screenings
	           WHERE theatre_id = ? AND screen_number = ?
	             AND NOT (ends_at <= ? OR starts_at >= ?)
	           ORDER BY starts_at`
	return r.queryScreenings(ctx, q, theatreID, screen, start, end)
}

// FindOverlappingExcluding behaves like FindOverlapping but ignores the
// screening with excludeID, so an update does not conflict with the row
// being updated.
func (r *ScreeningRepo) FindOverlappingExcluding(ctx context.Context, theatreID uint64, screen uint32, start, end time.Time, excludeID uint64) ([]model.Screening, error) {
	const q = `SELECT ` + screeningCols + `
	           FROM screenings
	           WHERE theatre_id = ? AND screen_number = ? AND id <> ?
	             AND NOT (ends_at <= ? OR starts_at >= ?)
	           ORDER BY starts_at`
	return r.queryScreenings(ctx, q, theatreID, screen, excludeID, start, end)
}

// ListByMovie returns all screenings of a movie ordered by start time.
func (r *ScreeningRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Screening, error) {
	const q = `SELECT ` + screeningCols + ` FROM screenings WHERE movie_id = ? ORDER BY starts_at`
	return r.queryScreenings(ctx, q, movieID)
}

// ListByTheatre returns all screenings in a theatre ordered by start time.
func (r *ScreeningRepo) ListByTheatre(ctx context.Context, theatreID uint64) ([]model.Screening, error) {
	const q = `SELECT ` + screeningCols + ` FROM screenings WHERE theatre_id = ? ORDER BY starts_at`
	return r.queryScreenings(ctx, q, theatreID)
}

// ListBetween returns screenings starting within [from, to) ordered by
// start time.  Used for the public per-day browse endpoint.
func (r *ScreeningRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.Screening, error) {
	const q = `SELECT ` + screeningCols + ` FROM screenings WHERE starts_at >= ? AND starts_at < ? ORDER BY starts_at`
	return r.queryScreenings(ctx, q, from, to)
}

// ListUpcoming returns screenings that have not started yet as of the
// given instant.
func (r *ScreeningRepo) ListUpcoming(ctx context.Context, now time.Time) ([]model.Screening, error) {
	const q = `SELECT ` + screeningCols + ` FROM screenings WHERE starts_at > ? ORDER BY starts_at`
	return r.queryScreenings(ctx, q, now)
}

// Update rewrites the mutable columns of a screening.  The caller is
// responsible for recomputing ends_at and re-running overlap checks
// before this call.
func (r *ScreeningRepo) Update(ctx context.Context, s *model.Screening) error {
	const q = `UPDATE screenings
	           SET movie_id = ?, theatre_id = ?, screen_number = ?, starts_at = ?, ends_at = ?, base_price_cents = ?, format = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.TheatreID, s.ScreenNumber, s.StartsAt, s.EndsAt, s.BasePriceCents, s.Format, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM screenings WHERE id = ? LIMIT 1`, s.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrScreeningNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a screening.  It refuses with ErrConflict while any
// booking still references it.
func (r *ScreeningRepo) Delete(ctx context.Context, id uint64) error {
	var bookings int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE screening_id = ?`, id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM screenings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreeningNotFound
	}
	return nil
}

func (r *ScreeningRepo) queryScreenings(ctx context.Context, q string, args ...any) ([]model.Screening, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Screening, 0)
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
