package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation links exactly two participants, optionally anchored to a
// listing. The last-message fields are denormalized for inbox ordering.
type Conversation struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	HostID        uuid.UUID  `json:"host_id"`
	ListingID     *uuid.UUID `json:"listing_id,omitempty"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt time.Time  `json:"last_message_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.UserID == userID {
		return c.HostID
	}
	return c.UserID
}

// HasParticipant returns true if userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.UserID == userID || c.HostID == userID
}

// Message belongs to exactly one conversation.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationSummary is a conversation annotated with the unread count
// computed for one participant at read time.
type ConversationSummary struct {
	Conversation
	UnreadCount int `json:"unread_count"`
}
