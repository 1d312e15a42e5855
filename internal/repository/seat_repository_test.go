package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thms/theatre-management/internal/model"
)

func TestBuildSeatGrid(t *testing.T) {
	const (
		rows        = 6
		seatsPerRow = 10
	)
	seats := BuildSeatGrid(7, 2, rows, seatsPerRow)
	require.Len(t, seats, rows*seatsPerRow)

	byLabel := make(map[string]model.Seat, len(seats))
	for _, s := range seats {
		assert.Equal(t, uint64(7), s.TheatreID)
		assert.Equal(t, uint32(2), s.ScreenNumber)
		byLabel[s.Label()] = s
	}
	require.Len(t, byLabel, rows*seatsPerRow, "labels must be unique")

	// Front two rows are standard.
	assert.Equal(t, model.SeatStandard, byLabel["A1"].SeatType)
	assert.Equal(t, 1.0, byLabel["A1"].PriceMultiplier)
	assert.Equal(t, model.SeatStandard, byLabel["B10"].SeatType)

	// Middle band is premium.
	assert.Equal(t, model.SeatPremium, byLabel["C5"].SeatType)
	assert.Equal(t, 1.2, byLabel["C5"].PriceMultiplier)

	// Back two rows are VIP.
	assert.Equal(t, model.SeatVIP, byLabel["E1"].SeatType)
	assert.Equal(t, model.SeatVIP, byLabel["F10"].SeatType)
	assert.Equal(t, 1.5, byLabel["F5"].PriceMultiplier)

	// Accessible pair at the ends of the middle row (row index 3 = D).
	assert.Equal(t, model.SeatAccessible, byLabel["D1"].SeatType)
	assert.Equal(t, 1.0, byLabel["D1"].PriceMultiplier)
	assert.Equal(t, model.SeatAccessible, byLabel["D10"].SeatType)
	assert.Equal(t, 1.0, byLabel["D10"].PriceMultiplier)
	// But the rest of that row stays premium.
	assert.Equal(t, model.SeatPremium, byLabel["D2"].SeatType)
}

func TestBuildSeatGridSmall(t *testing.T) {
	// A 4x4 grid still has distinct bands: rows A,B standard and C,D VIP
	// with no premium band in between.
	seats := BuildSeatGrid(1, 1, 4, 4)
	require.Len(t, seats, 16)
	for _, s := range seats {
		switch s.RowLabel {
		case "A", "B":
			assert.Equal(t, model.SeatStandard, s.SeatType, s.Label())
		case "C":
			if s.SeatNumber == 1 || s.SeatNumber == 4 {
				assert.Equal(t, model.SeatAccessible, s.SeatType, s.Label())
			} else {
				assert.Equal(t, model.SeatVIP, s.SeatType, s.Label())
			}
		case "D":
			assert.Equal(t, model.SeatVIP, s.SeatType, s.Label())
		}
	}
}

func TestComputeTotalCents(t *testing.T) {
	multipliers := map[string]float64{
		"A1": 1.0,
		"C5": 1.2,
		"F5": 1.5,
	}

	// 10.00 standard + 10.00 x 1.5 VIP = 25.00.
	assert.Equal(t, uint32(2500), ComputeTotalCents(1000, multipliers, []string{"A1", "F5"}))

	// Rounding: 999 x 1.2 = 1198.8 rounds to 1199.
	assert.Equal(t, uint32(1199), ComputeTotalCents(999, multipliers, []string{"C5"}))

	// Unknown labels fall back to the base price.
	assert.Equal(t, uint32(2000), ComputeTotalCents(1000, multipliers, []string{"Z9", "Z10"}))

	// Empty selection prices to zero.
	assert.Equal(t, uint32(0), ComputeTotalCents(1000, multipliers, nil))
}

func TestRowLabel(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
	}
	for in, want := range cases {
		assert.Equal(t, want, rowLabel(in))
	}
}
