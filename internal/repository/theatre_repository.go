package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thms/theatre-management/internal/model"
)

// TheatreRepo manages persistence for theatres.
type TheatreRepo struct {
	db *sql.DB
}

// NewTheatreRepo constructs a TheatreRepo with the given DB handle.
func NewTheatreRepo(db *sql.DB) *TheatreRepo {
	return &TheatreRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *TheatreRepo) DB() *sql.DB {
	return r.db
}

const theatreCols = `id, name, address, phone_number, email, description, total_screens, image_url, created_at, updated_at`

func scanTheatre(row interface{ Scan(...any) error }) (*model.Theatre, error) {
	var t model.Theatre
	var phone, email, desc, img sql.NullString
	err := row.Scan(&t.ID, &t.Name, &t.Address, &phone, &email, &desc, &t.TotalScreens, &img, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		t.PhoneNumber = &phone.String
	}
	if email.Valid {
		t.Email = &email.String
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	if img.Valid {
		t.ImageURL = &img.String
	}
	return &t, nil
}

// Create inserts a new theatre and populates the generated ID and
// timestamp defaults on the given struct.
func (r *TheatreRepo) Create(ctx context.Context, t *model.Theatre) error {
	const q = `INSERT INTO theatres (name, address, phone_number, email, description, total_screens, image_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Address, t.PhoneNumber, t.Email, t.Description, t.TotalScreens, t.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	fresh, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}

// GetByID retrieves a theatre by its ID.  It returns ErrTheatreNotFound
// when there is no matching row.
func (r *TheatreRepo) GetByID(ctx context.Context, id uint64) (*model.Theatre, error) {
	t, err := scanTheatre(r.db.QueryRowContext(ctx, `SELECT `+theatreCols+` FROM theatres WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheatreNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all theatres ordered by name.
func (r *TheatreRepo) List(ctx context.Context) ([]model.Theatre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+theatreCols+` FROM theatres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Theatre, 0)
	for rows.Next() {
		t, err := scanTheatre(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites all mutable columns of a theatre.  It returns
// ErrTheatreNotFound when the row does not exist.
func (r *TheatreRepo) Update(ctx context.Context, t *model.Theatre) error {
	const q = `UPDATE theatres
	           SET name = ?, address = ?, phone_number = ?, email = ?, description = ?, total_screens = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Address, t.PhoneNumber, t.Email, t.Description, t.TotalScreens, t.ImageURL, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero when the values are identical; check existence.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM theatres WHERE id = ? LIMIT 1`, t.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTheatreNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a theatre.  It refuses with ErrConflict while any
// screening still references the theatre, so historical bookings keep a
// resolvable venue.
func (r *TheatreRepo) Delete(ctx context.Context, id uint64) error {
	var screenings int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM screenings WHERE theatre_id = ?`, id).Scan(&screenings); err != nil {
		return err
	}
	if screenings > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM theatres WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTheatreNotFound
	}
	return nil
}
