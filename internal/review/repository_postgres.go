package review

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listReviewsQuery = `
		SELECT id, product_id, rating, comment, author, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY id DESC
	`
	insertReviewQuery = `
		INSERT INTO reviews (product_id, rating, comment, author, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	refreshAggregatesQuery = `
		UPDATE products SET
			rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = $1),
			review_count = (SELECT COUNT(*) FROM reviews WHERE product_id = $1)
		WHERE id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	if err := r.productExists(productID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(listReviewsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var (
			rev     Review
			comment sql.NullString
		)
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.Rating, &comment, &rev.Author, &rev.CreatedAt); err != nil {
			return nil, err
		}
		if comment.Valid {
			rev.Comment = &comment.String
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// Add inserts the review and refreshes the product's rating/reviewCount in
// the same transaction, so readers never observe a half-applied aggregate.
func (r *PostgresRepository) Add(rev Review) (Review, error) {
	if err := r.productExists(rev.ProductID); err != nil {
		return Review{}, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Review{}, err
	}
	defer tx.Rollback()

	var comment interface{}
	if rev.Comment != nil {
		comment = *rev.Comment
	}
	if err := tx.QueryRow(insertReviewQuery, rev.ProductID, rev.Rating, comment, rev.Author, rev.CreatedAt).Scan(&rev.ID); err != nil {
		return Review{}, err
	}
	if _, err := tx.Exec(refreshAggregatesQuery, rev.ProductID); err != nil {
		return Review{}, err
	}
	if err := tx.Commit(); err != nil {
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepository) productExists(productID int) error {
	var one int
	err := r.db.QueryRow(`SELECT 1 FROM products WHERE id = $1`, productID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrProductNotFound
	}
	return err
}
