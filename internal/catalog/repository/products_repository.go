package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/errors"
)

// ProductQuery describes the list filters supported by the catalog.
// Nil pointer fields mean "no filter".
type ProductQuery struct {
	CategoryID  *int64
	RoastLevel  *domain.RoastLevel
	IsAvailable *bool
	Search      string
	// SortColumn must be one of the keys of productSortColumns; it is
	// whitelisted here rather than trusted from the caller.
	SortColumn string
	SortDesc   bool
}

var productSortColumns = map[string]string{
	"name":      "p.name",
	"price":     "p.price",
	"createdAt": "p.created_at",
}

// ValidSortColumn reports whether the column can be sorted on.
func ValidSortColumn(column string) bool {
	_, ok := productSortColumns[column]
	return ok
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.category_id, c.name,
	p.roast_level, p.origin, p.weight_grams, p.is_available, p.image,
	p.created_at, p.updated_at`

type MySQLProductsRepository struct {
	db *sql.DB
}

func NewMySQLProductsRepository(db *sql.DB) *MySQLProductsRepository {
	return &MySQLProductsRepository{db: db}
}

func (r *MySQLProductsRepository) List(ctx context.Context, q ProductQuery, limit, offset int) ([]domain.Product, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if q.IsAvailable != nil {
		where = append(where, "p.is_available = ?")
		args = append(args, *q.IsAvailable)
	} else {
		// Catalog browsing only shows available products unless the
		// caller filters explicitly.
		where = append(where, "p.is_available = 1")
	}
	if q.CategoryID != nil {
		where = append(where, "p.category_id = ?")
		args = append(args, *q.CategoryID)
	}
	if q.RoastLevel != nil {
		where = append(where, "p.roast_level = ?")
		args = append(args, string(*q.RoastLevel))
	}
	if q.Search != "" {
		where = append(where, "(p.name LIKE ? OR p.description LIKE ? OR p.origin LIKE ?)")
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products p WHERE %s`, whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	orderBy := "p.created_at DESC"
	if column, ok := productSortColumns[q.SortColumn]; ok {
		direction := "ASC"
		if q.SortDesc {
			direction = "DESC"
		}
		orderBy = column + " " + direction
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`,
		productColumns, whereClause, orderBy,
	)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindByID resolves a single product for the public read paths. Like
// the catalog listing, it only sees available products; an unavailable
// one reads as missing.
func (r *MySQLProductsRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = ? AND p.is_available = 1`,
		productColumns,
	)

	var p domain.Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), &p)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}

	return &p, nil
}

// FindByIDsForUpdate locks and returns the requested products inside the
// caller's transaction. Used by order placement to snapshot prices.
func (r *MySQLProductsRepository) FindByIDsForUpdate(ctx context.Context, tx *sql.Tx, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id IN (%s)
		FOR UPDATE`,
		productColumns, strings.Join(placeholders, ", "),
	)

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products for update: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListFeatured returns products with an average rating of at least minRating
// and at least one review, best rated first.
func (r *MySQLProductsRepository) ListFeatured(ctx context.Context, minRating float64, limit int) ([]domain.FeaturedProduct, error) {
	query := fmt.Sprintf(`
		SELECT %s, AVG(rv.rating) AS avg_rating, COUNT(rv.id) AS review_count
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN reviews rv ON rv.product_id = p.id
		WHERE p.is_available = 1
		GROUP BY p.id
		HAVING avg_rating >= ?
		ORDER BY avg_rating DESC
		LIMIT ?`,
		productColumns,
	)

	rows, err := r.db.QueryContext(ctx, query, minRating, limit)
	if err != nil {
		return nil, fmt.Errorf("querying featured products: %w", err)
	}
	defer rows.Close()

	var featured []domain.FeaturedProduct
	for rows.Next() {
		var f domain.FeaturedProduct
		err := rows.Scan(
			&f.ID, &f.Name, &f.Description, &f.Price, &f.CategoryID, &f.CategoryName,
			&f.RoastLevel, &f.Origin, &f.WeightGrams, &f.IsAvailable, &f.Image,
			&f.CreatedAt, &f.UpdatedAt,
			&f.AverageRating, &f.ReviewCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning featured product row: %w", err)
		}
		featured = append(featured, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating featured product rows: %w", err)
	}

	return featured, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner, p *domain.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.CategoryName,
		&p.RoastLevel, &p.Origin, &p.WeightGrams, &p.IsAvailable, &p.Image,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
