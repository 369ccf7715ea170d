package category

import (
	"database/sql"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListActive returns active category rows ordered by `ord` then id.
func (r *PostgresRepository) ListActive() ([]Category, error) {
	rows, err := r.db.Query(`SELECT id, name, localized_name, image FROM categories WHERE active ORDER BY COALESCE(ord, 0) DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var (
			id        int
			name      string
			localized sql.NullString
			img       sql.NullString
		)
		if err := rows.Scan(&id, &name, &localized, &img); err != nil {
			return nil, err
		}
		item := Category{ID: id, Name: name, Active: true}
		if localized.Valid {
			item.LocalizedName = &localized.String
		}
		if img.Valid {
			item.Image = &img.String
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
