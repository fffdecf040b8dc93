package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        int64
	ProductID int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func (r Review) OwnerID() int64 {
	return r.UserID
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
