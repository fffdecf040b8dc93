package review

import "time"

type CreateReviewRequest struct {
	ProductID int64  `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type ListReviewsRequest struct {
	Page      int
	ProductID *int64
	Rating    *int
	// Sort takes createdAt or rating, optionally prefixed with '-' for
	// descending order. Newest first when empty.
	Sort string
}

type ReviewDTO struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewPageResponse struct {
	Count    int         `json:"count"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Results  []ReviewDTO `json:"results"`
}
