package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoastLevel string

const (
	RoastLight  RoastLevel = "light"
	RoastMedium RoastLevel = "medium"
	RoastDark   RoastLevel = "dark"
)

func (r RoastLevel) Valid() bool {
	switch r {
	case RoastLight, RoastMedium, RoastDark:
		return true
	}
	return false
}

type Product struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal
	CategoryID   int64
	CategoryName string
	RoastLevel   RoastLevel
	Origin       string
	WeightGrams  int
	IsAvailable  bool
	Image        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FeaturedProduct is a product annotated with its review aggregates.
type FeaturedProduct struct {
	Product
	AverageRating float64
	ReviewCount   int
}
