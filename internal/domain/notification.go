package domain

import "time"

// Notification is an in-app message for a user, written when moderation
// lands a product in a notifiable state.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	ProductID string    `json:"productId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
