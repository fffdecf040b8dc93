package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"coffeeshop/internal/catalog/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	categoriesRepo := repository.NewMySQLCategoriesRepository(db)
	productsRepo := repository.NewMySQLProductsRepository(db)
	uc := NewBrowseUseCase(categoriesRepo, productsRepo)
	return NewController(uc, logger)
}
