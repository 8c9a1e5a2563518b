package product

import (
	"context"

	"marketplace-api/internal/domain"
)

// Filter narrows List results. Zero values mean no restriction.
type Filter struct {
	State     string
	CreatorID string
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	// UpdateState applies a state change guarded by the expected current
	// state, writing the creator notification in the same transaction when
	// one is given. It reports false when the guard did not match.
	UpdateState(ctx context.Context, id, from, to string, n *domain.Notification) (bool, error)
	Delete(ctx context.Context, id string) error
}
