package repository

import (
	"context"
	"database/sql"
	"fmt"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/errors"
)

// OrderQuery holds list filters. Sorting is whitelisted here, never
// interpolated from caller input.
type OrderQuery struct {
	Status     *domain.OrderStatus
	SortColumn string
	SortDesc   bool
}

var orderSortColumns = map[string]string{
	"createdAt":   "created_at",
	"totalAmount": "total_amount",
}

func ValidSortColumn(column string) bool {
	_, ok := orderSortColumns[column]
	return ok
}

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (int64, error) {
	query := `
		INSERT INTO orders (user_id, status, total_amount, shipping_address)
		VALUES (?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		order.UserID, string(order.Status), order.TotalAmount, order.ShippingAddress,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return lastInsertID, nil
}

// FindByIDAndUser scopes the lookup to the owning user in the query
// itself, so a foreign order is indistinguishable from a missing one.
func (r *MySQLOrderRepository) FindByIDAndUser(ctx context.Context, id, userID int64) (*domain.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, shipping_address, created_at, updated_at
		FROM orders
		WHERE id = ? AND user_id = ?
	`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&order.ID, &order.UserID, &order.Status, &order.TotalAmount,
		&order.ShippingAddress, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}

func (r *MySQLOrderRepository) ListByUser(ctx context.Context, userID int64, q OrderQuery, limit, offset int) ([]domain.Order, int, error) {
	where := "user_id = ?"
	args := []interface{}{userID}

	if q.Status != nil {
		where += " AND status = ?"
		args = append(args, string(*q.Status))
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders WHERE %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	orderBy := "created_at DESC"
	if column, ok := orderSortColumns[q.SortColumn]; ok {
		direction := "ASC"
		if q.SortDesc {
			direction = "DESC"
		}
		orderBy = column + " " + direction
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, status, total_amount, shipping_address, created_at, updated_at
		FROM orders
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`,
		where, orderBy,
	)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.UserID, &order.Status, &order.TotalAmount,
			&order.ShippingAddress, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, total, nil
}

// Update changes status and shipping address only. Total amount and
// items are immutable after checkout.
func (r *MySQLOrderRepository) Update(ctx context.Context, id int64, status domain.OrderStatus, shippingAddress string) error {
	query := `UPDATE orders SET status = ?, shipping_address = ? WHERE id = ?`

	// rowsAffected is not checked: MySQL reports 0 when the new values
	// equal the old ones, and callers verify existence beforehand.
	_, err := r.db.ExecContext(ctx, query, string(status), shippingAddress, id)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	return nil
}
