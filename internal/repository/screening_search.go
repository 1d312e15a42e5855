package repository

import (
	"context"
	"strings"
)

// ScreeningSearchQuery defines filters & pagination for searching the
// public screening schedule.
type ScreeningSearchQuery struct {
	Title      string
	Theatre    string
	Format     string
	TimeFilter string
	Page       int
	PageSize   int
}

// PublicScreeningRow is a denormalized screening row for the public
// search endpoint, joining the movie and theatre names so clients need
// no further lookups.
type PublicScreeningRow struct {
	ID         uint64  `json:"id"`
	MovieID    uint64  `json:"movie_id"`
	Title      string  `json:"title"`
	TheatreID  uint64  `json:"theatre_id"`
	Theatre    string  `json:"theatre"`
	Screen     uint32  `json:"screen_number"`
	Format     string  `json:"format"`
	StartsAt   string  `json:"starts_at"`
	EndsAt     string  `json:"ends_at"`
	PriceCents uint32  `json:"base_price_cents"`
	Price      float64 `json:"base_price"`
}

// SearchUpcoming searches the screening schedule with optional title,
// theatre and format filters.  TimeFilter "any" includes past
// screenings, "active" includes ones still running, and the default
// keeps only screenings that have not started.
func (r *ScreeningRepo) SearchUpcoming(ctx context.Context, q ScreeningSearchQuery) ([]PublicScreeningRow, int64, error) {
	where := []string{}
	args := []any{}

	switch strings.ToLower(q.TimeFilter) {
	case "any":
	case "active":
		where = append(where, "s.ends_at >= NOW()")
	default:
		where = append(where, "s.starts_at >= NOW()")
	}

	if q.Title != "" {
		where = append(where, "LOWER(m.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Theatre != "" {
		where = append(where, "LOWER(t.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Theatre)+"%")
	}
	if q.Format != "" {
		where = append(where, "s.format = ?")
		args = append(args, strings.ToUpper(q.Format))
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM screenings s
		JOIN movies m   ON m.id = s.movie_id
		JOIN theatres t ON t.id = s.theatre_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			s.id,
			s.movie_id,
			m.title,
			s.theatre_id,
			t.name AS theatre_name,
			s.screen_number,
			s.format,
			DATE_FORMAT(s.starts_at, '%Y-%m-%d %T') AS starts_at,
			DATE_FORMAT(s.ends_at,   '%Y-%m-%d %T') AS ends_at,
			s.base_price_cents
		FROM screenings s
		JOIN movies m   ON m.id = s.movie_id
		JOIN theatres t ON t.id = s.theatre_id
		WHERE ` + cond + `
		ORDER BY s.starts_at ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicScreeningRow, 0, limit)
	for rows.Next() {
		var d PublicScreeningRow
		if err := rows.Scan(
			&d.ID,
			&d.MovieID,
			&d.Title,
			&d.TheatreID,
			&d.Theatre,
			&d.Screen,
			&d.Format,
			&d.StartsAt,
			&d.EndsAt,
			&d.PriceCents,
		); err != nil {
			return nil, 0, err
		}
		d.Price = float64(d.PriceCents) / 100.0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
