package catalog

import (
	"context"

	"coffeeshop/internal/catalog/repository"
	"coffeeshop/internal/domain"
)

type BrowseUseCase interface {
	ListCategories(ctx context.Context, req ListCategoriesRequest) (*CategoryPageResponse, error)
	ListProducts(ctx context.Context, req ListProductsRequest) (*ProductPageResponse, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	ListFeatured(ctx context.Context) ([]FeaturedProductDTO, error)
}

type CategoriesRepository interface {
	List(ctx context.Context, q repository.CategoryQuery, limit, offset int) ([]domain.Category, int, error)
}

type ProductsRepository interface {
	List(ctx context.Context, q repository.ProductQuery, limit, offset int) ([]domain.Product, int, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	ListFeatured(ctx context.Context, minRating float64, limit int) ([]domain.FeaturedProduct, error)
}
