package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const productColumns = `id, name, localized_name, description, price, original_price, image, image_second, brand, stock, category_id, rating, review_count, featured, active`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List builds the WHERE clause from the set filters. The search term is
// matched case-insensitively across name, localized name and description.
func (r *PostgresRepository) List(f Filter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	conds := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if f.ActiveOnly {
		conds = append(conds, "active")
	}
	if f.FeaturedOnly {
		conds = append(conds, "featured")
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if len(f.IDs) > 0 {
		args = append(args, pq.Array(f.IDs))
		conds = append(conds, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR localized_name ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (Product, error) {
	var (
		p             Product
		localized     sql.NullString
		originalPrice sql.NullFloat64
		image         sql.NullString
		imageSecond   sql.NullString
		brand         sql.NullString
		categoryID    sql.NullInt64
	)
	err := s.Scan(&p.ID, &p.Name, &localized, &p.Description, &p.Price, &originalPrice,
		&image, &imageSecond, &brand, &p.Stock, &categoryID, &p.Rating, &p.ReviewCount, &p.Featured, &p.Active)
	if err != nil {
		return Product{}, err
	}
	if localized.Valid {
		p.LocalizedName = &localized.String
	}
	if originalPrice.Valid {
		p.OriginalPrice = &originalPrice.Float64
	}
	if image.Valid {
		p.Image = &image.String
	}
	if imageSecond.Valid {
		p.ImageSecond = &imageSecond.String
	}
	if brand.Valid {
		p.Brand = &brand.String
	}
	if categoryID.Valid {
		v := int(categoryID.Int64)
		p.CategoryID = &v
	}
	return p, nil
}
