package repository

import (
	"context"
	"database/sql"
	"errors"

	cartDomain "github.com/ridloal/clothing-storefront/internal/cart/domain"
	"github.com/ridloal/clothing-storefront/internal/order/domain"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id         BIGSERIAL PRIMARY KEY,
    nombre     TEXT NOT NULL,
    email      TEXT NOT NULL,
    direccion  TEXT NOT NULL,
    pago       TEXT NOT NULL DEFAULT '',
    total      NUMERIC(12,2) NOT NULL CHECK (total >= 0),
    created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items (
    order_id   BIGINT NOT NULL REFERENCES orders(id),
    position   INT NOT NULL,
    product_id INT NOT NULL,
    name       TEXT NOT NULL,
    price      NUMERIC(12,2) NOT NULL,
    image      TEXT NOT NULL,
    type       TEXT NOT NULL,
    gender     TEXT NOT NULL,
    quantity   INT NOT NULL,
    PRIMARY KEY (order_id, position)
);`

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

// EnsureSchema creates the ledger tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		logger.Error("EnsureSchema: failed to create order tables", err, nil)
		return err
	}
	return nil
}

// CreateOrder menyimpan order dan item-itemnya dalam satu transaksi.
func (r *postgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("CreateOrder: failed to begin tx", err, nil)
		return err
	}
	defer tx.Rollback() // Rollback jika tidak di-commit

	orderQuery := `INSERT INTO orders (nombre, email, direccion, pago, total, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err = tx.QueryRowContext(ctx, orderQuery, order.Nombre, order.Email, order.Direccion, order.Pago, order.Total, order.Date).
		Scan(&order.ID)
	if err != nil {
		logger.Error("CreateOrder: failed to insert order", err, nil)
		return err
	}

	itemStmt, err := tx.PrepareContext(ctx, `INSERT INTO order_items (order_id, position, product_id, name, price, image, type, gender, quantity)
                                            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		logger.Error("CreateOrder: failed to prepare item statement", err, nil)
		return err
	}
	defer itemStmt.Close()

	for i, item := range order.Items {
		_, err = itemStmt.ExecContext(ctx, order.ID, i, item.ID, item.Name, item.Price, item.Image, item.Type, item.Gender, item.Quantity)
		if err != nil {
			logger.Error("CreateOrder: failed to insert order item", err, map[string]interface{}{"item_product_id": item.ID})
			return err // Rollback akan terjadi
		}
	}

	return tx.Commit()
}

func (r *postgresOrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT id, nombre, email, direccion, pago, total, created_at FROM orders ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListOrders: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := map[int64]int{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Nombre, &o.Email, &o.Direccion, &o.Pago, &o.Total, &o.Date); err != nil {
			logger.Error("ListOrders: scan failed", err, nil)
			return nil, err
		}
		o.Items = []cartDomain.CartLine{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListOrders: rows iteration error", err, nil)
		return nil, err
	}

	itemRows, err := r.db.QueryContext(ctx, `SELECT order_id, product_id, name, price, image, type, gender, quantity
                                             FROM order_items ORDER BY order_id, position`)
	if err != nil {
		logger.Error("ListOrders: item query failed", err, nil)
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int64
		var line cartDomain.CartLine
		if err := itemRows.Scan(&orderID, &line.ID, &line.Name, &line.Price, &line.Image, &line.Type, &line.Gender, &line.Quantity); err != nil {
			logger.Error("ListOrders: item scan failed", err, nil)
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, line)
		}
	}
	return orders, itemRows.Err()
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT id, nombre, email, direccion, pago, total, created_at FROM orders WHERE id = $1`
	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Nombre, &o.Email, &o.Direccion, &o.Pago, &o.Total, &o.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		logger.Error("GetOrderByID: query failed", err, nil)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT product_id, name, price, image, type, gender, quantity
                                         FROM order_items WHERE order_id = $1 ORDER BY position`, id)
	if err != nil {
		logger.Error("GetOrderByID: item query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	o.Items = []cartDomain.CartLine{}
	for rows.Next() {
		var line cartDomain.CartLine
		if err := rows.Scan(&line.ID, &line.Name, &line.Price, &line.Image, &line.Type, &line.Gender, &line.Quantity); err != nil {
			logger.Error("GetOrderByID: item scan failed", err, nil)
			return nil, err
		}
		o.Items = append(o.Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}
