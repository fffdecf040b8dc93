package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type ListCategoriesRequest struct {
	Page   int
	Search string
	// Sort takes name or createdAt, optionally prefixed with '-' for
	// descending order.
	Sort string
}

type ListProductsRequest struct {
	Page        int
	CategoryID  *int64
	RoastLevel  *string
	IsAvailable *bool
	Search      string
	// Sort takes a column name, optionally prefixed with '-' for
	// descending order: name, price, createdAt.
	Sort string
}

type CategoryDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProductDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	RoastLevel   string          `json:"roastLevel"`
	Origin       string          `json:"origin"`
	WeightGrams  int             `json:"weightGrams"`
	IsAvailable  bool            `json:"isAvailable"`
	Image        *string         `json:"image"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type FeaturedProductDTO struct {
	ProductDTO
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

type CategoryPageResponse struct {
	Count    int           `json:"count"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Results  []CategoryDTO `json:"results"`
}

type ProductPageResponse struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
	Results  []ProductDTO `json:"results"`
}
