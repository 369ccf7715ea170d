package cart

import (
	"database/sql"
	"fmt"

	"github.com/wirote65/storefront-backend/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	itemColumns = `id, product_id, user_id, session_id, quantity`

	// INNER JOIN drops rows whose product no longer resolves.
	listCartQuery = `
		SELECT ci.id, ci.product_id, ci.user_id, ci.session_id, ci.quantity,
			p.id, p.name, p.localized_name, p.description, p.price, p.original_price,
			p.image, p.image_second, p.brand, p.stock, p.category_id, p.rating,
			p.review_count, p.featured, p.active
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.%s = $1
		ORDER BY ci.id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func ownerColumn(o Owner) (string, interface{}) {
	if o.UserID > 0 {
		return "user_id", o.UserID
	}
	return "session_id", o.SessionID
}

// Add increments the quantity of the existing (owner, product) row, or
// inserts a new one. The read-then-write pair can race under parallel adds
// for the same owner; the expected load is a single browser session.
func (r *PostgresRepository) Add(o Owner, productID, qty int) (Item, error) {
	col, key := ownerColumn(o)

	var existingID int
	err := r.db.QueryRow(
		fmt.Sprintf(`SELECT id FROM cart_items WHERE %s = $1 AND product_id = $2`, col),
		key, productID).Scan(&existingID)
	switch err {
	case nil:
		return r.scanItem(r.db.QueryRow(
			`UPDATE cart_items SET quantity = quantity + $1 WHERE id = $2 RETURNING `+itemColumns,
			qty, existingID))
	case sql.ErrNoRows:
		var userID, sessionID interface{}
		if o.UserID > 0 {
			userID = o.UserID
		} else {
			sessionID = o.SessionID
		}
		return r.scanItem(r.db.QueryRow(
			`INSERT INTO cart_items (product_id, user_id, session_id, quantity) VALUES ($1, $2, $3, $4) RETURNING `+itemColumns,
			productID, userID, sessionID, qty))
	default:
		return Item{}, err
	}
}

func (r *PostgresRepository) UpdateQuantity(itemID, qty int) (Item, error) {
	item, err := r.scanItem(r.db.QueryRow(
		`UPDATE cart_items SET quantity = $1 WHERE id = $2 RETURNING `+itemColumns,
		qty, itemID))
	if err == sql.ErrNoRows {
		return Item{}, ErrItemNotFound
	}
	return item, err
}

func (r *PostgresRepository) Remove(itemID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Clear deletes only the rows belonging to the given owner.
func (r *PostgresRepository) Clear(o Owner) error {
	col, key := ownerColumn(o)
	_, err := r.db.Exec(fmt.Sprintf(`DELETE FROM cart_items WHERE %s = $1`, col), key)
	return err
}

func (r *PostgresRepository) List(o Owner) ([]Line, error) {
	col, key := ownerColumn(o)
	rows, err := r.db.Query(fmt.Sprintf(listCartQuery, col), key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Line, 0)
	for rows.Next() {
		var (
			line          Line
			userID        sql.NullInt64
			sessionID     sql.NullString
			localized     sql.NullString
			originalPrice sql.NullFloat64
			image         sql.NullString
			imageSecond   sql.NullString
			brand         sql.NullString
			categoryID    sql.NullInt64
		)
		p := &line.Product
		err := rows.Scan(&line.ID, &line.Item.ProductID, &userID, &sessionID, &line.Quantity,
			&p.ID, &p.Name, &localized, &p.Description, &p.Price, &originalPrice,
			&image, &imageSecond, &brand, &p.Stock, &categoryID, &p.Rating,
			&p.ReviewCount, &p.Featured, &p.Active)
		if err != nil {
			return nil, err
		}
		if userID.Valid {
			v := int(userID.Int64)
			line.UserID = &v
		}
		if sessionID.Valid {
			line.Item.SessionID = &sessionID.String
		}
		applyNullable(p, localized, originalPrice, image, imageSecond, brand, categoryID)
		out = append(out, line)
	}
	return out, rows.Err()
}

func applyNullable(p *product.Product, localized sql.NullString, originalPrice sql.NullFloat64,
	image, imageSecond, brand sql.NullString, categoryID sql.NullInt64) {
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
}

func (r *PostgresRepository) scanItem(row *sql.Row) (Item, error) {
	var (
		it        Item
		userID    sql.NullInt64
		sessionID sql.NullString
	)
	if err := row.Scan(&it.ID, &it.ProductID, &userID, &sessionID, &it.Quantity); err != nil {
		return Item{}, err
	}
	if userID.Valid {
		v := int(userID.Int64)
		it.UserID = &v
	}
	if sessionID.Valid {
		it.SessionID = &sessionID.String
	}
	return it, nil
}
