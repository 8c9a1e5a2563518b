package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a listing owned by a creator and gated by a moderation state.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	CreatorID   string          `json:"creatorId"`
	State       string          `json:"state"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
