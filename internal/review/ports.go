package review

import (
	"context"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/review/repository"
)

type UseCase interface {
	CreateReview(ctx context.Context, userID int64, req CreateReviewRequest) (*ReviewDTO, error)
	ListReviews(ctx context.Context, req ListReviewsRequest) (*ReviewPageResponse, error)
	ListProductReviews(ctx context.Context, productID int64, page int) (*ReviewPageResponse, error)
	UpdateReview(ctx context.Context, userID, reviewID int64, req UpdateReviewRequest) (*ReviewDTO, error)
	DeleteReview(ctx context.Context, userID, reviewID int64) error
}

type ReviewsRepository interface {
	Insert(ctx context.Context, review domain.Review) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Review, error)
	List(ctx context.Context, q repository.ReviewQuery, limit, offset int) ([]domain.Review, int, error)
	Update(ctx context.Context, id int64, rating int, comment string) error
	Delete(ctx context.Context, id int64) error
}

// ProductFinder resolves the reviewed product; the catalog module's
// products repository satisfies it.
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
}
