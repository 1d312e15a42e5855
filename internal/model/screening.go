package model

import "time"

// Screening formats.  THREE_D and FOUR_D keep the storage spelling used
// by the screenings.format column.
const (
	FormatStandard   = "STANDARD"
	FormatIMAX       = "IMAX"
	FormatDolbyAtmos = "DOLBY_ATMOS"
	Format3D         = "THREE_D"
	Format4D         = "FOUR_D"
)

// Screening represents a scheduled showing of one movie on one screen of
// a theatre.  EndsAt is always derived from StartsAt plus the movie's
// duration and is recomputed whenever the start time or the movie
// changes.  For a given (theatre, screen number) the [StartsAt, EndsAt)
// intervals of all screenings must be pairwise disjoint.
//
// Fields:
//  ID             – primary key identifier.
//  MovieID        – movie being shown.
//  TheatreID      – theatre hosting the screening.
//  ScreenNumber   – screen within the theatre (1..theatre.total_screens).
//  StartsAt       – when the screening begins (UTC).
//  EndsAt         – derived end time (UTC).
//  Format         – presentation format (STANDARD, IMAX, ...).
//  BasePriceCents – base seat price in cents; scaled per seat by its multiplier.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Screening struct {
	ID             uint64    `json:"id"`
	MovieID        uint64    `json:"movie_id"`
	TheatreID      uint64    `json:"theatre_id"`
	ScreenNumber   uint32    `json:"screen_number"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Format         string    `json:"format"`
	BasePriceCents uint32    `json:"base_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ValidFormat reports whether s is one of the accepted screening formats.
func ValidFormat(s string) bool {
	switch s {
	case FormatStandard, FormatIMAX, FormatDolbyAtmos, Format3D, Format4D:
		return true
	}
	return false
}

// Overlaps reports whether the half-open interval [aStart, aEnd) of this
// screening intersects [bStart, bEnd).  Two screenings on the same
// screen conflict exactly when this returns true.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
