package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/errors"
)

const mysqlErrDuplicateEntry = 1062

// ReviewQuery holds the public list filters. Sorting is whitelisted
// here, never interpolated from caller input.
type ReviewQuery struct {
	ProductID  *int64
	Rating     *int
	SortColumn string
	SortDesc   bool
}

var reviewSortColumns = map[string]string{
	"createdAt": "created_at",
	"rating":    "rating",
}

func ValidSortColumn(column string) bool {
	_, ok := reviewSortColumns[column]
	return ok
}

type MySQLReviewsRepository struct {
	db *sql.DB
}

func NewMySQLReviewsRepository(db *sql.DB) *MySQLReviewsRepository {
	return &MySQLReviewsRepository{db: db}
}

// Insert persists a review. The unique key on (product_id, user_id)
// makes a second review for the same pair fail even when two requests
// race; an existing review is never overwritten.
func (r *MySQLReviewsRepository) Insert(ctx context.Context, review domain.Review) (int64, error) {
	query := `INSERT INTO reviews (product_id, user_id, rating, comment) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		review.ProductID, review.UserID, review.Rating, review.Comment,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, errors.NewConflictError(
				fmt.Sprintf("review already exists for product %d", review.ProductID),
			)
		}
		return 0, fmt.Errorf("inserting review: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return lastInsertID, nil
}

func (r *MySQLReviewsRepository) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE id = ?
	`

	var review domain.Review
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID, &review.ProductID, &review.UserID,
		&review.Rating, &review.Comment, &review.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("review with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying review by id: %w", err)
	}

	return &review, nil
}

// List returns reviews newest first unless sorted explicitly. Reading
// reviews is public, so there is no ownership scoping here.
func (r *MySQLReviewsRepository) List(ctx context.Context, q ReviewQuery, limit, offset int) ([]domain.Review, int, error) {
	where := "1=1"
	args := []interface{}{}

	if q.ProductID != nil {
		where += " AND product_id = ?"
		args = append(args, *q.ProductID)
	}
	if q.Rating != nil {
		where += " AND rating = ?"
		args = append(args, *q.Rating)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM reviews WHERE %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting reviews: %w", err)
	}

	orderBy := "created_at DESC"
	if column, ok := reviewSortColumns[q.SortColumn]; ok {
		direction := "ASC"
		if q.SortDesc {
			direction = "DESC"
		}
		orderBy = column + " " + direction
	}

	query := fmt.Sprintf(`
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE %s
		ORDER BY %s, id DESC
		LIMIT ? OFFSET ?`,
		where, orderBy,
	)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.ID, &review.ProductID, &review.UserID,
			&review.Rating, &review.Comment, &review.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating review rows: %w", err)
	}

	return reviews, total, nil
}

// Update changes rating and comment only; product and user references
// are immutable after creation.
func (r *MySQLReviewsRepository) Update(ctx context.Context, id int64, rating int, comment string) error {
	query := `UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, rating, comment, id)
	if err != nil {
		return fmt.Errorf("updating review: %w", err)
	}

	return nil
}

func (r *MySQLReviewsRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("review with id %d not found", id))
	}

	return nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return false
}
