package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/thms/theatre-management/internal/model"
)

// SeatRepo provides methods to work with the seat inventory of theatre
// screens.  Seats are addressed by (theatre_id, screen_number) plus the
// row label and seat number; bookings refer to them only by label.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

const seatCols = `id, theatre_id, screen_number, row_label, seat_number, seat_type, price_multiplier, created_at, updated_at`

// ListByScreen retrieves all seats of a theatre screen ordered by
// row_label then seat_number.
func (r *SeatRepo) ListByScreen(ctx context.Context, theatreID uint64, screen uint32) ([]model.Seat, error) {
	const q = `SELECT ` + seatCols + `
	           FROM seats
	           WHERE theatre_id = ? AND screen_number = ?
	           ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q, theatreID, screen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.TheatreID, &s.ScreenNumber, &s.RowLabel, &s.SeatNumber, &s.SeatType, &s.PriceMultiplier, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountByScreen returns the number of seats on a screen.  Used to guard
// initialization against an existing layout.
func (r *SeatRepo) CountByScreen(ctx context.Context, theatreID uint64, screen uint32) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seats WHERE theatre_id = ? AND screen_number = ?`,
		theatreID, screen).Scan(&n)
	return n, err
}

// CreateGrid installs a fresh seat layout on a screen.  It refuses with
// ErrSeatsExist when the screen already has seats; the existing layout
// must be deleted before a new one can be initialized.
func (r *SeatRepo) CreateGrid(ctx context.Context, theatreID uint64, screen uint32, seats []model.Seat) error {
	n, err := r.CountByScreen(ctx, theatreID, screen)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrSeatsExist
	}
	return r.CreateBulk(ctx, seats)
}

// CreateBulk inserts multiple seats in a single statement.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (theatre_id, screen_number, row_label, seat_number, seat_type, price_multiplier) VALUES `
	args := make([]any, 0, len(seats)*6)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, s.TheatreID, s.ScreenNumber, s.RowLabel, s.SeatNumber, s.SeatType, s.PriceMultiplier)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteByScreen removes all seats of a theatre screen and returns how
// many rows were deleted.
func (r *SeatRepo) DeleteByScreen(ctx context.Context, theatreID uint64, screen uint32) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM seats WHERE theatre_id = ? AND screen_number = ?`,
		theatreID, screen)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateType changes the seat type and multiplier of a single seat.
// Returns ErrSeatNotFound when the seat does not exist.
func (r *SeatRepo) UpdateType(ctx context.Context, seatID uint64, seatType string, multiplier float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE seats SET seat_type = ?, price_multiplier = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		seatType, multiplier, seatID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM seats WHERE id = ? LIMIT 1`, seatID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSeatNotFound
			}
			return err
		}
	}
	return nil
}

// UpdateRowType changes the seat type and multiplier for every seat in a
// row of a screen.  Returns ErrSeatNotFound when the row has no seats.
func (r *SeatRepo) UpdateRowType(ctx context.Context, theatreID uint64, screen uint32, rowLabel, seatType string, multiplier float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE seats SET seat_type = ?, price_multiplier = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE theatre_id = ? AND screen_number = ? AND row_label = ?`,
		seatType, multiplier, theatreID, screen, rowLabel)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var count int
		if err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM seats WHERE theatre_id = ? AND screen_number = ? AND row_label = ?`,
			theatreID, screen, rowLabel).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return ErrSeatNotFound
		}
	}
	return nil
}

// MultiplierMap returns a label -> price multiplier mapping for all
// seats of a theatre screen.  The map is consumed by ComputeTotalCents.
func (r *SeatRepo) MultiplierMap(ctx context.Context, theatreID uint64, screen uint32) (map[string]float64, error) {
	const q = `SELECT row_label, seat_number, price_multiplier
	           FROM seats
	           WHERE theatre_id = ? AND screen_number = ?`
	rows, err := r.db.QueryContext(ctx, q, theatreID, screen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := make(map[string]float64)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.RowLabel, &s.SeatNumber, &s.PriceMultiplier); err != nil {
			return nil, err
		}
		m[s.Label()] = s.PriceMultiplier
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// ComputeTotalCents prices a seat selection: each label contributes
// round(baseCents x multiplier), and labels absent from the inventory
// fall back to the plain base price.  The fallback is a documented
// contract, not an error: legacy bookings may carry labels for seats
// that were later re-laid out.
func ComputeTotalCents(baseCents uint32, multipliers map[string]float64, labels []string) uint32 {
	var total uint32
	for _, lbl := range labels {
		if mult, ok := multipliers[lbl]; ok {
			total += uint32(math.Round(float64(baseCents) * mult))
		} else {
			total += baseCents
		}
	}
	return total
}

// Seat grid generation parameters.  Front rows are standard, the middle
// band premium, the back rows VIP, and the two outermost seats of the
// middle row are carved out as accessible at the standard multiplier.
const (
	multStandard = 1.0
	multPremium  = 1.2
	multVIP      = 1.5
)

// BuildSeatGrid generates the rectangular seat layout for one theatre
// screen: rows x seatsPerRow seats with row labels A, B, C...  The
// returned slice is ready for CreateBulk.
func BuildSeatGrid(theatreID uint64, screen uint32, numRows, seatsPerRow int) []model.Seat {
	seats := make([]model.Seat, 0, numRows*seatsPerRow)
	for row := 0; row < numRows; row++ {
		label := rowLabel(row)
		for num := 1; num <= seatsPerRow; num++ {
			s := model.Seat{
				TheatreID:    theatreID,
				ScreenNumber: screen,
				RowLabel:     label,
				SeatNumber:   uint32(num),
			}
			switch {
			case row < 2:
				s.SeatType, s.PriceMultiplier = model.SeatStandard, multStandard
			case row < numRows-2:
				s.SeatType, s.PriceMultiplier = model.SeatPremium, multPremium
			default:
				s.SeatType, s.PriceMultiplier = model.SeatVIP, multVIP
			}
			// Accessible pair at the ends of the middle row.
			if row == numRows/2 && (num == 1 || num == seatsPerRow) {
				s.SeatType, s.PriceMultiplier = model.SeatAccessible, multStandard
			}
			seats = append(seats, s)
		}
	}
	return seats
}

// rowLabel converts a zero-based row index to an alphabetical label
// like A, B, ..., Z, AA, AB.
func rowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
