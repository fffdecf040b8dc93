package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReview_Creation(t *testing.T) {
	createdAt := time.Now()

	review := Review{
		ID:        1,
		ProductID: 5,
		UserID:    10,
		Rating:    4,
		Comment:   "Bright and fruity, great pour-over.",
		CreatedAt: createdAt,
	}

	assert.Equal(t, int64(1), review.ID)
	assert.Equal(t, int64(5), review.ProductID)
	assert.Equal(t, int64(10), review.UserID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, createdAt, review.CreatedAt)
}

func TestReview_OwnerID(t *testing.T) {
	review := Review{ID: 1, UserID: 7}
	assert.Equal(t, int64(7), review.OwnerID())
}

func TestValidRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.True(t, ValidRating(rating), "rating %d should be valid", rating)
	}

	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}
