package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffeeshop/internal/domain"
	apperrors "coffeeshop/internal/errors"
	"coffeeshop/internal/testutil"
)

// Unit Tests

func TestNewMySQLReviewsRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLReviewsRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func seedProductForReviews(t *testing.T, db *sql.DB, name string) int64 {
	categoryID := testutil.SeedCategory(t, db, name+" Category")
	return testutil.SeedProduct(t, db, categoryID, name, "12.00")
}

func TestReviewsRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	productID := seedProductForReviews(t, db, "Guatemala Antigua")
	repo := NewMySQLReviewsRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, domain.Review{
		ProductID: productID,
		UserID:    42,
		Rating:    5,
		Comment:   "Bright and floral.",
	})
	require.NoError(t, err)

	review, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, productID, review.ProductID)
	assert.Equal(t, int64(42), review.UserID)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Bright and floral.", review.Comment)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestReviewsRepository_SecondReviewConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	productID := seedProductForReviews(t, db, "Guatemala Antigua")
	repo := NewMySQLReviewsRepository(db)
	ctx := context.Background()

	first, err := repo.Insert(ctx, domain.Review{ProductID: productID, UserID: 42, Rating: 5, Comment: "Excellent."})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, domain.Review{ProductID: productID, UserID: 42, Rating: 1, Comment: "Changed my mind."})
	require.Error(t, err)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)

	// The original review is untouched by the rejected insert.
	review, err := repo.FindByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Excellent.", review.Comment)

	// A different user may still review the same product.
	_, err = repo.Insert(ctx, domain.Review{ProductID: productID, UserID: 7, Rating: 4, Comment: "Good."})
	assert.NoError(t, err)
}

func TestReviewsRepository_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	productA := seedProductForReviews(t, db, "Guatemala Antigua")
	productB := seedProductForReviews(t, db, "Brazil Santos")
	repo := NewMySQLReviewsRepository(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, domain.Review{ProductID: productA, UserID: 1, Rating: 5, Comment: "a"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, domain.Review{ProductID: productA, UserID: 2, Rating: 3, Comment: "b"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, domain.Review{ProductID: productB, UserID: 1, Rating: 5, Comment: "c"})
	require.NoError(t, err)

	reviews, total, err := repo.List(ctx, ReviewQuery{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, reviews, 3)

	reviews, total, err = repo.List(ctx, ReviewQuery{ProductID: &productA}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, review := range reviews {
		assert.Equal(t, productA, review.ProductID)
	}

	rating := 5
	reviews, total, err = repo.List(ctx, ReviewQuery{Rating: &rating}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, review := range reviews {
		assert.Equal(t, 5, review.Rating)
	}
}

func TestReviewSortColumns(t *testing.T) {
	assert.True(t, ValidSortColumn("createdAt"))
	assert.True(t, ValidSortColumn("rating"))
	assert.False(t, ValidSortColumn("comment"))
	assert.False(t, ValidSortColumn("user_id; DROP TABLE reviews"))
}

func TestReviewsRepository_List_SortByRating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	productID := seedProductForReviews(t, db, "Guatemala Antigua")
	repo := NewMySQLReviewsRepository(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, domain.Review{ProductID: productID, UserID: 1, Rating: 3, Comment: "a"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, domain.Review{ProductID: productID, UserID: 2, Rating: 5, Comment: "b"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, domain.Review{ProductID: productID, UserID: 3, Rating: 1, Comment: "c"})
	require.NoError(t, err)

	reviews, _, err := repo.List(ctx, ReviewQuery{SortColumn: "rating", SortDesc: true}, 10, 0)
	require.NoError(t, err)

	require.Len(t, reviews, 3)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, 1, reviews[2].Rating)
}

func TestReviewsRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	productID := seedProductForReviews(t, db, "Guatemala Antigua")
	repo := NewMySQLReviewsRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, domain.Review{ProductID: productID, UserID: 42, Rating: 3, Comment: "Fine."})
	require.NoError(t, err)

	err = repo.Update(ctx, id, 5, "Grew on me.")
	require.NoError(t, err)

	review, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "Grew on me.", review.Comment)
	assert.Equal(t, int64(42), review.UserID)
}

func TestReviewsRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	productID := seedProductForReviews(t, db, "Guatemala Antigua")
	repo := NewMySQLReviewsRepository(db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, domain.Review{ProductID: productID, UserID: 42, Rating: 4, Comment: "Good."})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.FindByID(ctx, id)
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	err = repo.Delete(ctx, id)
	require.Error(t, err)
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
