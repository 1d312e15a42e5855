package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	// 10-12 vs 11-13 intersect.
	assert.True(t, Overlaps(at(0), at(2), at(1), at(3)))
	assert.True(t, Overlaps(at(1), at(3), at(0), at(2)))

	// One interval fully inside the other.
	assert.True(t, Overlaps(at(0), at(4), at(1), at(2)))

	// Back-to-back screenings share an endpoint but do not overlap.
	assert.False(t, Overlaps(at(0), at(2), at(2), at(4)))
	assert.False(t, Overlaps(at(2), at(4), at(0), at(2)))

	// Disjoint with a gap.
	assert.False(t, Overlaps(at(0), at(1), at(2), at(3)))
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{FormatStandard, FormatIMAX, FormatDolbyAtmos, Format3D, Format4D} {
		assert.True(t, ValidFormat(f), f)
	}
	assert.False(t, ValidFormat("IMAX "))
	assert.False(t, ValidFormat("3D"))
	assert.False(t, ValidFormat(""))
}
