package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{PaymentPending, PaymentCompleted, true},
		{PaymentPending, PaymentCancelled, true},
		{PaymentCompleted, PaymentCancelled, true},
		{PaymentCompleted, PaymentRefunded, true},
		// refunds only from COMPLETED
		{PaymentPending, PaymentRefunded, false},
		{PaymentCancelled, PaymentRefunded, false},
		// terminal states stay terminal
		{PaymentCancelled, PaymentCompleted, false},
		{PaymentRefunded, PaymentCompleted, false},
		{PaymentRefunded, PaymentCancelled, false},
		// no self transitions
		{PaymentCompleted, PaymentCompleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentPending, PaymentCompleted, PaymentCancelled, PaymentRefunded} {
		assert.True(t, ValidPaymentStatus(s))
	}
	assert.False(t, ValidPaymentStatus("PAID"))
	assert.False(t, ValidPaymentStatus(""))
}

func TestSeatLabel(t *testing.T) {
	s := Seat{RowLabel: "C", SeatNumber: 7}
	assert.Equal(t, "C7", s.Label())
	s = Seat{RowLabel: "AA", SeatNumber: 12}
	assert.Equal(t, "AA12", s.Label())
}
