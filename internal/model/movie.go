package model

import "time"

// Movie represents an entry in the movie catalog.  Movies are linked to
// genres through the movie_genres join table and to screenings through
// screenings.movie_id.  DurationMinutes drives screening end-time
// computation and must be positive.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – movie title (max 100 chars).
//  Description     – optional synopsis.
//  DurationMinutes – running time in minutes; screening ends_at = starts_at + duration.
//  Director        – optional director name.
//  Cast            – optional comma separated cast list.
//  ReleaseDate     – optional theatrical release date.
//  PosterImageURL  – optional poster image location.
//  TrailerURL      – optional trailer location.
//  Rating          – audience rating (G, PG, PG13, R, NC17, UNRATED).
//  CreatedAt       – timestamp when the row was created.
//  UpdatedAt       – timestamp of last update.
type Movie struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	DurationMinutes uint32     `json:"duration_minutes"`
	Director        *string    `json:"director,omitempty"`
	Cast            *string    `json:"cast,omitempty"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	PosterImageURL  *string    `json:"poster_image_url,omitempty"`
	TrailerURL      *string    `json:"trailer_url,omitempty"`
	Rating          string     `json:"rating"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Genre is a movie category such as ACTION or DRAMA.  Genres have a
// unique name and are attached to movies via movie_genres.
type Genre struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// MovieRatings enumerates the accepted values for movies.rating.
var MovieRatings = []string{"G", "PG", "PG13", "R", "NC17", "UNRATED"}

// ValidRating reports whether s is one of the accepted rating values.
func ValidRating(s string) bool {
	for _, r := range MovieRatings {
		if s == r {
			return true
		}
	}
	return false
}
