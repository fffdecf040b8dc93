package catalog

import (
	"context"
	"strings"

	"coffeeshop/internal/catalog/repository"
	"coffeeshop/internal/domain"
	apperrors "coffeeshop/internal/errors"
	"coffeeshop/internal/pagination"
)

const (
	featuredMinRating = 4.0
	featuredLimit     = 8
)

type browseUseCase struct {
	categories CategoriesRepository
	products   ProductsRepository
}

func NewBrowseUseCase(categories CategoriesRepository, products ProductsRepository) BrowseUseCase {
	return &browseUseCase{categories: categories, products: products}
}

func (uc *browseUseCase) ListCategories(ctx context.Context, req ListCategoriesRequest) (*CategoryPageResponse, error) {
	q := repository.CategoryQuery{Search: strings.TrimSpace(req.Search)}

	if req.Sort != "" {
		column, desc := parseSort(req.Sort)
		if !repository.ValidCategorySortColumn(column) {
			return nil, apperrors.NewValidationError("invalid sort field", apperrors.ValidationDetail{
				Field:   "sort",
				Message: "sort must be one of name, createdAt",
			})
		}
		q.SortColumn = column
		q.SortDesc = desc
	}

	p := pagination.Page{Number: req.Page}
	categories, total, err := uc.categories.List(ctx, q, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}

	results := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		results = append(results, CategoryDTO{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
		})
	}

	return &CategoryPageResponse{
		Count:    total,
		Page:     p.Number,
		PageSize: pagination.PageSize,
		Results:  results,
	}, nil
}

func (uc *browseUseCase) ListProducts(ctx context.Context, req ListProductsRequest) (*ProductPageResponse, error) {
	q := repository.ProductQuery{
		CategoryID:  req.CategoryID,
		IsAvailable: req.IsAvailable,
		Search:      req.Search,
	}

	if req.RoastLevel != nil {
		level := domain.RoastLevel(*req.RoastLevel)
		if !level.Valid() {
			return nil, apperrors.NewValidationError("invalid roast level", apperrors.ValidationDetail{
				Field:   "roastLevel",
				Message: "roastLevel must be one of light, medium, dark",
			})
		}
		q.RoastLevel = &level
	}

	if req.Sort != "" {
		column, desc := parseSort(req.Sort)
		if !repository.ValidSortColumn(column) {
			return nil, apperrors.NewValidationError("invalid sort field", apperrors.ValidationDetail{
				Field:   "sort",
				Message: "sort must be one of name, price, createdAt",
			})
		}
		q.SortColumn = column
		q.SortDesc = desc
	}

	p := pagination.Page{Number: req.Page}
	products, total, err := uc.products.List(ctx, q, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}

	results := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		results = append(results, toProductDTO(product))
	}

	return &ProductPageResponse{
		Count:    total,
		Page:     p.Number,
		PageSize: pagination.PageSize,
		Results:  results,
	}, nil
}

func (uc *browseUseCase) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toProductDTO(*product)
	return &dto, nil
}

func (uc *browseUseCase) ListFeatured(ctx context.Context) ([]FeaturedProductDTO, error) {
	featured, err := uc.products.ListFeatured(ctx, featuredMinRating, featuredLimit)
	if err != nil {
		return nil, err
	}

	results := make([]FeaturedProductDTO, 0, len(featured))
	for _, f := range featured {
		results = append(results, FeaturedProductDTO{
			ProductDTO:    toProductDTO(f.Product),
			AverageRating: f.AverageRating,
			ReviewCount:   f.ReviewCount,
		})
	}

	return results, nil
}

func parseSort(sort string) (column string, desc bool) {
	if strings.HasPrefix(sort, "-") {
		return sort[1:], true
	}
	return sort, false
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		RoastLevel:   string(p.RoastLevel),
		Origin:       p.Origin,
		WeightGrams:  p.WeightGrams,
		IsAvailable:  p.IsAvailable,
		Image:        p.Image,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
