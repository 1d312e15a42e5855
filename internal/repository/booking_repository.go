package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/thms/theatre-management/internal/model"
)

// BookingRepo manages bookings and their claimed seat labels.  Seat
// claims are rows in booking_seats guarded by a unique index on
// (screening_id, seat_label); inserting a claim that collides with a
// live booking fails at the index, which is what makes concurrent
// booking attempts safe without a pre-check.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *BookingRepo) DB() *sql.DB {
	return r.db
}

const bookingCols = `id, user_id, screening_id, booking_number, payment_method, payment_status, total_amount_cents, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.ScreeningID, &b.BookingNumber, &b.PaymentMethod, &b.PaymentStatus, &b.TotalAmountCents, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateTx inserts the booking row inside tx and populates its
// generated ID.  Seat labels are claimed separately via ClaimSeatsTx in
// the same transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, screening_id, booking_number, payment_method, payment_status, total_amount_cents)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.ScreeningID, b.BookingNumber, b.PaymentMethod, b.PaymentStatus, b.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// ClaimSeatsTx claims the given seat labels for a booking inside tx.
// A duplicate-key failure means another live booking already holds one
// of the labels and is mapped to ErrSeatTaken so the whole transaction
// can roll back.
func (r *BookingRepo) ClaimSeatsTx(ctx context.Context, tx *sql.Tx, bookingID, screeningID uint64, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, screening_id, seat_label) VALUES `
	args := make([]any, 0, len(labels)*3)
	for i, lbl := range labels {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, bookingID, screeningID, lbl)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

// FreeSeatsTx deletes the booking's seat claim rows inside tx.  Run on
// cancellation so the unique index only covers live claims and the
// freed labels become bookable again.
func (r *BookingRepo) FreeSeatsTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM booking_seats WHERE booking_id = ?`, bookingID)
	return err
}

// UpdateStatusTx sets the booking's payment status inside tx.  The
// transition must already have been validated with model.CanTransition.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET payment_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ? LIMIT 1`, bookingID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBookingNotFound
			}
			return err
		}
	}
	return nil
}

// GetByID retrieves a booking with its seat labels, returning
// ErrBookingNotFound when there is no matching row.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if err := r.attachLabels(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetByIDTx loads a booking inside tx with a row lock, so a status
// transition reads and writes the same version.  Seat labels are not
// attached.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetByNumber retrieves a booking by its human-facing booking number.
func (r *BookingRepo) GetByNumber(ctx context.Context, number string) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingCols+` FROM bookings WHERE booking_number = ?`, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if err := r.attachLabels(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListByUser returns a user's bookings, newest first, with seat labels.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return r.queryBookings(ctx, q, userID)
}

// ListByScreening returns all bookings of a screening ordered by
// creation time.
func (r *BookingRepo) ListByScreening(ctx context.Context, screeningID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE screening_id = ? ORDER BY created_at, id`
	return r.queryBookings(ctx, q, screeningID)
}

// ListByStatus returns all bookings in the given payment status, newest
// first.
func (r *BookingRepo) ListByStatus(ctx context.Context, status string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE payment_status = ? ORDER BY created_at DESC, id DESC`
	return r.queryBookings(ctx, q, status)
}

// BookedLabels returns the seat labels currently claimed for a
// screening.  Cancelled bookings do not appear because cancellation
// deletes their claim rows.
func (r *BookingRepo) BookedLabels(ctx context.Context, screeningID uint64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_label FROM booking_seats WHERE screening_id = ? ORDER BY seat_label`,
		screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	labels := make([]string, 0)
	for rows.Next() {
		var lbl string
		if err := rows.Scan(&lbl); err != nil {
			return nil, err
		}
		labels = append(labels, lbl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

// Delete removes a booking and its seat claims.  Admin-only cleanup;
// regular users cancel instead.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM booking_seats WHERE booking_id = ?`, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepo) attachLabels(ctx context.Context, b *model.Booking) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_label FROM booking_seats WHERE booking_id = ?`, b.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var lbl string
		if err := rows.Scan(&lbl); err != nil {
			return err
		}
		b.SeatLabels = append(b.SeatLabels, lbl)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	sort.Strings(b.SeatLabels)
	return nil
}

func (r *BookingRepo) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.attachLabels(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}
