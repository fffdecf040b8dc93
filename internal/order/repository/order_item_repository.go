package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/errors"
)

const mysqlErrDuplicateEntry = 1062

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// Insert adds one line to an order inside the checkout transaction. The
// unique key on (order_id, product_id) rejects a second line for the
// same product even when two writers race.
func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderItem) (int64, error) {
	query := `INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.Price)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, errors.NewConflictError(
				fmt.Sprintf("order already contains product %d", item.ProductID),
			)
		}
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return lastInsertID, nil
}

func (r *MySQLOrderItemRepository) ListByOrderID(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	itemsByOrder, err := r.ListByOrderIDs(ctx, []int64{orderID})
	if err != nil {
		return nil, err
	}
	return itemsByOrder[orderID], nil
}

// ListByOrderIDs loads the items of several orders at once, keyed by
// order id, with product names joined in.
func (r *MySQLOrderItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	if len(orderIDs) == 0 {
		return map[int64][]domain.OrderItem{}, nil
	}

	placeholders := make([]string, len(orderIDs))
	args := make([]interface{}, 0, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id IN (%s)
		ORDER BY oi.id`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return itemsByOrder, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return false
}
