package repository

import (
	"context"
	"database/sql"
	"fmt"

	"coffeeshop/internal/domain"
)

// CategoryQuery holds the category list filters. Sorting is whitelisted
// here, never interpolated from caller input.
type CategoryQuery struct {
	Search     string
	SortColumn string
	SortDesc   bool
}

var categorySortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

func ValidCategorySortColumn(column string) bool {
	_, ok := categorySortColumns[column]
	return ok
}

type MySQLCategoriesRepository struct {
	db *sql.DB
}

func NewMySQLCategoriesRepository(db *sql.DB) *MySQLCategoriesRepository {
	return &MySQLCategoriesRepository{db: db}
}

func (r *MySQLCategoriesRepository) List(ctx context.Context, q CategoryQuery, limit, offset int) ([]domain.Category, int, error) {
	where := "1=1"
	args := []interface{}{}

	if q.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM categories WHERE %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting categories: %w", err)
	}

	orderBy := "name"
	if column, ok := categorySortColumns[q.SortColumn]; ok {
		direction := "ASC"
		if q.SortDesc {
			direction = "DESC"
		}
		orderBy = column + " " + direction
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, created_at
		FROM categories
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`,
		where, orderBy,
	)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, total, nil
}
