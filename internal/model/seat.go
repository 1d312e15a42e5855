package model

import "time"

// Seat type constants.  The multiplier recorded on each seat row scales
// the screening base price when a booking is priced.
const (
	SeatStandard   = "STANDARD"
	SeatPremium    = "PREMIUM"
	SeatVIP        = "VIP"
	SeatAccessible = "ACCESSIBLE"
)

// Seat describes a physical seat on one screen of a theatre.  Seats are
// uniquely identified by (theatre, screen number, row label, seat
// number).  The seat label used in bookings is RowLabel immediately
// followed by SeatNumber, e.g. "C7".
//
// Fields:
//  ID              – primary key identifier.
//  TheatreID       – theatre to which this seat belongs.
//  ScreenNumber    – screen within the theatre (1-based).
//  RowLabel        – letter or string designating the row.
//  SeatNumber      – number of the seat within the row (1-based).
//  SeatType        – STANDARD, PREMIUM, VIP or ACCESSIBLE.
//  PriceMultiplier – positive factor applied to a screening's base price.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Seat struct {
	ID              uint64    `json:"id"`
	TheatreID       uint64    `json:"theatre_id"`
	ScreenNumber    uint32    `json:"screen_number"`
	RowLabel        string    `json:"row_label"`
	SeatNumber      uint32    `json:"seat_number"`
	SeatType        string    `json:"seat_type"`
	PriceMultiplier float64   `json:"price_multiplier"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Label returns the booking label of the seat: the row label directly
// concatenated with the seat number ("A1", "F12").
func (s Seat) Label() string {
	return s.RowLabel + uitoa(s.SeatNumber)
}

// ValidSeatType reports whether s is one of the accepted seat types.
func ValidSeatType(s string) bool {
	switch s {
	case SeatStandard, SeatPremium, SeatVIP, SeatAccessible:
		return true
	}
	return false
}

// uitoa formats a uint32 without pulling strconv into every caller.
func uitoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
