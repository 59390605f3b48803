package repository

import (
	"context"
	"database/sql"

	"herptrack/internal/models"
)

type ProductSQLite struct {
	db *sql.DB
}

func NewProductSQLite(db *sql.DB) *ProductSQLite { return &ProductSQLite{db: db} }

// List returns recommendations. A product row with NULL species applies to
// every species; the category filter is exact.
func (r *ProductSQLite) List(ctx context.Context, species, category string) ([]models.Product, error) {
	q := `SELECT id, species, category, name, url, note FROM products WHERE 1=1`
	args := []any{}
	if species != "" {
		q += ` AND (species = ? OR species IS NULL)`
		args = append(args, species)
	}
	if category != "" {
		q += ` AND category = ?`
		args = append(args, category)
	}
	q += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Product, 0, 16)
	for rows.Next() {
		var (
			p   models.Product
			sp  sql.NullString
			cat sql.NullString
			url sql.NullString
			nt  sql.NullString
		)
		if err := rows.Scan(&p.ID, &sp, &cat, &p.Name, &url, &nt); err != nil {
			return nil, err
		}
		if sp.Valid {
			p.Species = sp.String
		}
		if cat.Valid {
			p.Category = cat.String
		}
		if url.Valid {
			p.URL = url.String
		}
		if nt.Valid {
			p.Note = nt.String
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
