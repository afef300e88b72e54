package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating of a listing. At most one review per
// (user, listing) pair, and only after a completed stay.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
