package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer rating of a product. It stays invisible to the public and
// out of the product's rating until an admin approves it.
type Review struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string // read-side
	UserID      uuid.UUID
	UserName    string // read-side
	Rating      int    // 1..5
	Comment     string
	AdminReply  string
	Approved    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AverageRating returns the arithmetic mean of the ratings and their count.
// An empty set yields 0 and 0.
func AverageRating(reviews []*Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	return float64(sum) / float64(len(reviews)), len(reviews)
}
