package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus represents the publication state of a listing.
type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "DRAFT"
	ListingStatusPublished ListingStatus = "PUBLISHED"
	ListingStatusArchived  ListingStatus = "ARCHIVED"
)

// Listing represents a rentable property.
type Listing struct {
	ID           uuid.UUID     `json:"id"`
	HostID       uuid.UUID     `json:"host_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Location     string        `json:"location"`
	NightlyPrice int64         `json:"nightly_price"` // Smallest currency unit
	Currency     string        `json:"currency"`
	Status       ListingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// IsBookable returns true if the listing accepts new bookings.
func (l *Listing) IsBookable() bool {
	return l.Status == ListingStatusPublished
}
