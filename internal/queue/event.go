// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is successfully created.
// It carries enough denormalized context for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID        uint64   `json:"booking_id"`
	BookingNumber    string   `json:"booking_number"`
	UserID           uint64   `json:"user_id"`
	ScreeningID      uint64   `json:"screening_id"`
	TheatreID        uint64   `json:"theatre_id"`
	TheatreName      string   `json:"theatre_name"`
	ScreenNumber     uint32   `json:"screen_number"`
	MovieTitle       string   `json:"movie_title"`
	StartsAt         string   `json:"starts_at"`
	EndsAt           string   `json:"ends_at"`
	SeatLabels       []string `json:"seats"`
	PaymentStatus    string   `json:"payment_status"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	CreatedAt        string   `json:"created_at"`
}
