package notification

import (
	"context"

	"marketplace-api/internal/domain"
)

// Repository reads notifications. Rows are written by the product repository
// inside the state-change transaction.
type Repository interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}
