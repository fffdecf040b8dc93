package review

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"coffeeshop/internal/domain"
	apperrors "coffeeshop/internal/errors"
	"coffeeshop/internal/guard"
	"coffeeshop/internal/pagination"
	"coffeeshop/internal/review/repository"
)

type useCase struct {
	reviews  ReviewsRepository
	products ProductFinder
	logger   *zap.Logger
}

func NewUseCase(reviews ReviewsRepository, products ProductFinder, logger *zap.Logger) UseCase {
	return &useCase{
		reviews:  reviews,
		products: products,
		logger:   logger,
	}
}

// CreateReview stores one review per (product, user). The owning user is
// always the authenticated caller. A duplicate surfaces as a conflict
// from the storage constraint and leaves the original untouched.
func (uc *useCase) CreateReview(ctx context.Context, userID int64, req CreateReviewRequest) (*ReviewDTO, error) {
	var details []apperrors.ValidationDetail

	if req.ProductID <= 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must be a positive integer",
		})
	}
	if !domain.ValidRating(req.Rating) {
		details = append(details, apperrors.ValidationDetail{
			Field:   "rating",
			Message: fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating),
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	if _, err := uc.products.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	review := domain.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	id, err := uc.reviews.Insert(ctx, review)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("review created",
		zap.Int64("reviewId", id), zap.Int64("productId", req.ProductID), zap.Int64("userId", userID))

	created, err := uc.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := toReviewDTO(*created)
	return &result, nil
}

// ListReviews is public; anyone can read any review.
func (uc *useCase) ListReviews(ctx context.Context, req ListReviewsRequest) (*ReviewPageResponse, error) {
	if req.Rating != nil && !domain.ValidRating(*req.Rating) {
		return nil, apperrors.NewValidationError("invalid rating filter", apperrors.ValidationDetail{
			Field:   "rating",
			Message: fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating),
		})
	}

	q := repository.ReviewQuery{
		ProductID: req.ProductID,
		Rating:    req.Rating,
	}

	if req.Sort != "" {
		column, desc := parseSort(req.Sort)
		if !repository.ValidSortColumn(column) {
			return nil, apperrors.NewValidationError("invalid sort field", apperrors.ValidationDetail{
				Field:   "sort",
				Message: "sort must be one of createdAt, rating",
			})
		}
		q.SortColumn = column
		q.SortDesc = desc
	}

	p := pagination.Page{Number: req.Page}
	reviews, total, err := uc.reviews.List(ctx, q, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}

	return toReviewPage(reviews, total, p.Number), nil
}

func (uc *useCase) ListProductReviews(ctx context.Context, productID int64, page int) (*ReviewPageResponse, error) {
	if _, err := uc.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	return uc.ListReviews(ctx, ListReviewsRequest{
		Page:      page,
		ProductID: &productID,
	})
}

func (uc *useCase) UpdateReview(ctx context.Context, userID, reviewID int64, req UpdateReviewRequest) (*ReviewDTO, error) {
	if req.Rating == nil && req.Comment == nil {
		return nil, apperrors.NewValidationError("nothing to update", apperrors.ValidationDetail{
			Field:   "body",
			Message: "at least one of rating, comment is required",
		})
	}

	review, err := uc.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if !guard.CanModify(userID, review) {
		return nil, apperrors.NewForbiddenError("not the owner of this review")
	}

	rating := review.Rating
	if req.Rating != nil {
		rating = *req.Rating
		if !domain.ValidRating(rating) {
			return nil, apperrors.NewValidationError("invalid rating", apperrors.ValidationDetail{
				Field:   "rating",
				Message: fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating),
			})
		}
	}

	comment := review.Comment
	if req.Comment != nil {
		comment = *req.Comment
	}

	if err := uc.reviews.Update(ctx, review.ID, rating, comment); err != nil {
		return nil, err
	}

	updated, err := uc.reviews.FindByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}

	result := toReviewDTO(*updated)
	return &result, nil
}

func (uc *useCase) DeleteReview(ctx context.Context, userID, reviewID int64) error {
	review, err := uc.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if !guard.CanModify(userID, review) {
		return apperrors.NewForbiddenError("not the owner of this review")
	}

	if err := uc.reviews.Delete(ctx, review.ID); err != nil {
		return err
	}

	uc.logger.Info("review deleted",
		zap.Int64("reviewId", review.ID), zap.Int64("userId", userID))

	return nil
}

func parseSort(sort string) (column string, desc bool) {
	if strings.HasPrefix(sort, "-") {
		return sort[1:], true
	}
	return sort, false
}

func toReviewDTO(review domain.Review) ReviewDTO {
	return ReviewDTO{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func toReviewPage(reviews []domain.Review, total, page int) *ReviewPageResponse {
	results := make([]ReviewDTO, 0, len(reviews))
	for _, review := range reviews {
		results = append(results, toReviewDTO(review))
	}

	return &ReviewPageResponse{
		Count:    total,
		Page:     page,
		PageSize: pagination.PageSize,
		Results:  results,
	}
}
