package review

import (
	"database/sql"

	"go.uber.org/zap"

	catalogrepo "coffeeshop/internal/catalog/repository"
	"coffeeshop/internal/review/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	reviewsRepo := repository.NewMySQLReviewsRepository(db)
	productsRepo := catalogrepo.NewMySQLProductsRepository(db)
	uc := NewUseCase(reviewsRepo, productsRepo, logger)
	return NewController(uc, logger)
}
