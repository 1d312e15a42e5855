package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingNumberFormat(t *testing.T) {
	n := NewBookingNumber()
	require.Len(t, n, 34)
	assert.True(t, strings.HasPrefix(n, "BK"))
	for _, r := range n[2:] {
		assert.Contains(t, "0123456789ABCDEF", string(r))
	}
}

func TestNewBookingNumberUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		n := NewBookingNumber()
		_, dup := seen[n]
		require.False(t, dup, "duplicate booking number %s", n)
		seen[n] = struct{}{}
	}
}
