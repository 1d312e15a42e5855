package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewBookingNumber returns a globally unique booking reference of the
// form "BK" followed by a 32 character uppercase hex string.  The value
// is backed by a random UUID rather than a timestamp+random-suffix
// scheme, so uniqueness does not depend on clock resolution; the
// bookings.booking_number unique index remains the final guard.
func NewBookingNumber() string {
	id := uuid.New()
	return "BK" + strings.ToUpper(hex32(id))
}

// hex32 renders the UUID's 16 bytes as 32 hex characters without dashes.
func hex32(id uuid.UUID) string {
	const digits = "0123456789abcdef"
	var b [32]byte
	for i, v := range id {
		b[i*2] = digits[v>>4]
		b[i*2+1] = digits[v&0x0f]
	}
	return string(b[:])
}
