package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/thms/theatre-management/internal/model"
)

// MovieRepo manages persistence for the movie catalog and the
// movie_genres join table.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieCols = `id, title, description, duration_minutes, director, movie_cast, release_date, poster_image_url, trailer_url, rating, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
	var m model.Movie
	var desc, director, cast, poster, trailer sql.NullString
	var release sql.NullTime
	err := row.Scan(&m.ID, &m.Title, &desc, &m.DurationMinutes, &director, &cast, &release, &poster, &trailer, &m.Rating, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		m.Description = &desc.String
	}
	if director.Valid {
		m.Director = &director.String
	}
	if cast.Valid {
		m.Cast = &cast.String
	}
	if release.Valid {
		m.ReleaseDate = &release.Time
	}
	if poster.Valid {
		m.PosterImageURL = &poster.String
	}
	if trailer.Valid {
		m.TrailerURL = &trailer.String
	}
	return &m, nil
}

// Create inserts a movie and populates its generated ID and defaults.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, description, duration_minutes, director, movie_cast, release_date, poster_image_url, trailer_url, rating)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.DurationMinutes, m.Director, m.Cast, m.ReleaseDate, m.PosterImageURL, m.TrailerURL, m.Rating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	fresh, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *fresh
	return nil
}

// GetByID retrieves a movie by its ID.  It returns ErrMovieNotFound when
// there is no matching row.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieCols+` FROM movies WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns movies ordered by title, optionally filtered by a title
// substring and/or a genre ID (zero means no genre filter).
func (r *MovieRepo) List(ctx context.Context, titleLike string, genreID uint64) ([]model.Movie, error) {
	var (
		q    strings.Builder
		args []any
	)
	q.WriteString(`SELECT m.` + strings.ReplaceAll(movieCols, ", ", ", m.") + ` FROM movies m`)
	if genreID != 0 {
		q.WriteString(` JOIN movie_genres mg ON mg.movie_id = m.id AND mg.genre_id = ?`)
		args = append(args, genreID)
	}
	if titleLike = strings.TrimSpace(titleLike); titleLike != "" {
		q.WriteString(` WHERE m.title LIKE ?`)
		args = append(args, "%"+titleLike+"%")
	}
	q.WriteString(` ORDER BY m.title`)
	rows, err := r.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites all mutable columns of a movie.  Screenings referencing
// the movie keep their stored ends_at; callers that change
// duration_minutes must recompute affected screenings themselves.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET title = ?, description = ?, duration_minutes = ?, director = ?, movie_cast = ?, release_date = ?, poster_image_url = ?, trailer_url = ?, rating = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.DurationMinutes, m.Director, m.Cast, m.ReleaseDate, m.PosterImageURL, m.TrailerURL, m.Rating, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ? LIMIT 1`, m.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMovieNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a movie.  It refuses with ErrConflict while screenings
// still reference it.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	var screenings int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM screenings WHERE movie_id = ?`, id).Scan(&screenings); err != nil {
		return err
	}
	if screenings > 0 {
		return ErrConflict
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = ?`, id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// SetGenres replaces the movie's genre set with the provided genre IDs.
func (r *MovieRepo) SetGenres(ctx context.Context, movieID uint64, genreIDs []uint64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = ?`, movieID); err != nil {
		return err
	}
	if len(genreIDs) == 0 {
		return nil
	}
	query := `INSERT INTO movie_genres (movie_id, genre_id) VALUES `
	args := make([]any, 0, len(genreIDs)*2)
	for i, gid := range genreIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, movieID, gid)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GenresOf returns the genres attached to a movie ordered by name.
func (r *MovieRepo) GenresOf(ctx context.Context, movieID uint64) ([]model.Genre, error) {
	const q = `SELECT g.id, g.name
	           FROM genres g
	           JOIN movie_genres mg ON mg.genre_id = g.id
	           WHERE mg.movie_id = ?
	           ORDER BY g.name`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Genre, 0)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
