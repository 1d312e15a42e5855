package model

import "time"

// Payment status values for a booking.  A new booking is COMPLETED
// immediately on creation (payment is assumed to settle inline); PENDING
// exists for payment flows that settle asynchronously.  Status changes
// only through the transition table below — there is no free-form
// status override.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentCancelled = "CANCELLED"
	PaymentRefunded  = "REFUNDED"
)

// paymentTransitions is the guarded transition table.  Cancellation is
// additionally gated on the screening start time by the caller; refunds
// are only reachable from COMPLETED.  CANCELLED and REFUNDED are
// terminal.
var paymentTransitions = map[string][]string{
	PaymentPending:   {PaymentCompleted, PaymentCancelled},
	PaymentCompleted: {PaymentCancelled, PaymentRefunded},
}

// CanTransition reports whether a booking in status from may move to
// status to.
func CanTransition(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the four payment states.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// Booking records one purchase of seats for a screening by a user.  The
// claimed seat labels live in the booking_seats table, which carries a
// unique index on (screening_id, seat_label) so that two live bookings
// can never hold the same seat.  Labels are denormalized strings rather
// than seat IDs: later seat price or type changes do not rewrite
// historical bookings.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – user who made the booking.
//  ScreeningID      – screening being booked.
//  BookingNumber    – unique human-facing reference ("BK..." prefix).
//  PaymentMethod    – method supplied at creation (CARD, CASH, ...); informational.
//  PaymentStatus    – one of the four payment states above.
//  TotalAmountCents – sum of base price x seat multiplier over claimed labels.
//  SeatLabels       – labels claimed by this booking, sorted.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	ScreeningID      uint64    `json:"screening_id"`
	BookingNumber    string    `json:"booking_number"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentStatus    string    `json:"payment_status"`
	TotalAmountCents uint32    `json:"total_amount_cents"`
	SeatLabels       []string  `json:"seat_labels"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
