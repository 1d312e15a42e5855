// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them to HTTP statuses: not-found sentinels become 404, conflict
// sentinels 409.
package repository

import "errors"

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as deleting a screening that still has
// bookings.
var ErrConflict = errors.New("conflict")

// ErrSeatTaken is returned when a booking tries to claim a seat label
// that another live booking already holds for the same screening.  It is
// raised by the unique index on booking_seats(screening_id, seat_label),
// not by a pre-check, so concurrent claims cannot both succeed.
var ErrSeatTaken = errors.New("seat already booked")

// ErrSeatsExist is returned when seat initialization targets a screen
// that already has seats.  The existing layout must be deleted first.
var ErrSeatsExist = errors.New("seats already initialized for screen")

// Not-found sentinels, one per entity.
var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrGenreNotFound     = errors.New("genre not found")
	ErrTheatreNotFound   = errors.New("theatre not found")
	ErrSeatNotFound      = errors.New("seat not found")
	ErrScreeningNotFound = errors.New("screening not found")
	ErrBookingNotFound   = errors.New("booking not found")
)
