package order

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `id, order_number, customer_key, subtotal, delivery_charge, total, payment_method, payment_status, status, delivery_address, estimated_delivery_time, created_at`

	insertOrderQuery = `
		INSERT INTO orders (order_number, customer_key, subtotal, delivery_charge, total, payment_method, payment_status, status, delivery_address, estimated_delivery_time, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`
	insertItemQuery = `
		INSERT INTO order_items (order_id, product_id, seller_id, quantity, unit_price, total_price)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
	listItemsQuery = `
		SELECT id, order_id, product_id, seller_id, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create writes the header and every item inside one transaction so a
// partial order can never be observed.
func (r *PostgresRepository) Create(ord Order, items []Item) (Order, error) {
	addrJSON, err := json.Marshal(ord.DeliveryAddress)
	if err != nil {
		return Order{}, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	var taken int
	err = tx.QueryRow(`SELECT 1 FROM orders WHERE order_number = $1`, ord.OrderNumber).Scan(&taken)
	if err == nil {
		return Order{}, ErrDuplicateOrderNumber
	}
	if err != sql.ErrNoRows {
		return Order{}, err
	}

	err = tx.QueryRow(insertOrderQuery,
		ord.OrderNumber, ord.CustomerKey, ord.Subtotal, ord.DeliveryCharge, ord.Total,
		ord.PaymentMethod, ord.PaymentStatus, ord.Status, addrJSON,
		ord.EstimatedDeliveryTime, ord.CreatedAt).Scan(&ord.ID)
	if err != nil {
		// a concurrent create can slip past the pre-check and trip the
		// unique constraint instead
		if isUniqueViolation(err) {
			return Order{}, ErrDuplicateOrderNumber
		}
		return Order{}, err
	}

	ord.Items = make([]Item, len(items))
	for i, it := range items {
		it.OrderID = ord.ID
		if err := tx.QueryRow(insertItemQuery, it.OrderID, it.ProductID, it.SellerID, it.Quantity, it.UnitPrice, it.TotalPrice).Scan(&it.ID); err != nil {
			return Order{}, err
		}
		ord.Items[i] = it
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByCustomer(key string) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE customer_key = $1 ORDER BY id DESC`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}

	rows, err := r.db.Query(listItemsQuery, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()

	ord.Items = make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.SellerID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return Order{}, err
		}
		ord.Items = append(ord.Items, it)
	}
	return ord, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (Order, error) {
	var (
		ord       Order
		addrJSON  []byte
		estimated sql.NullString
	)
	err := s.Scan(&ord.ID, &ord.OrderNumber, &ord.CustomerKey, &ord.Subtotal, &ord.DeliveryCharge,
		&ord.Total, &ord.PaymentMethod, &ord.PaymentStatus, &ord.Status, &addrJSON, &estimated, &ord.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	if len(addrJSON) > 0 {
		if err := json.Unmarshal(addrJSON, &ord.DeliveryAddress); err != nil {
			return Order{}, err
		}
	}
	if estimated.Valid {
		ord.EstimatedDeliveryTime = estimated.String
	}
	return ord, nil
}
