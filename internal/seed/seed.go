package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Title       string
	Slug        string
	Description string
	Price       string
	State       string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON
// CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := ensureUser(ctx, pool, "admin@marketplace.local", envOr("SEED_ADMIN_PASSWORD", "Admin123"), true); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	sellerID, err := ensureUser(ctx, pool, "seller@marketplace.local", envOr("SEED_SELLER_PASSWORD", "Seller123"), false)
	if err != nil {
		return fmt.Errorf("ensure seller: %w", err)
	}

	categoryID, err := ensureCategory(ctx, pool, "Art", "art")
	if err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}

	products := []productSeed{
		{
			Title:       "Abstract Print",
			Slug:        "abstract-print",
			Description: "Limited edition abstract print",
			Price:       "149.00",
			State:       "accepted",
		},
		{
			Title:       "Charcoal Sketch",
			Slug:        "charcoal-sketch",
			Description: "Original charcoal sketch, unframed",
			Price:       "75.50",
			State:       "new",
		},
		{
			Title:       "Oil Study",
			Slug:        "oil-study",
			Description: "Small oil study on canvas",
			Price:       "210.00",
			State:       "draft",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryID, sellerID, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password string, admin bool) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO users (email, password_hash, is_admin)
VALUES ($1, $2, $3)
ON CONFLICT ((lower(email))) DO UPDATE SET is_admin = EXCLUDED.is_admin
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hash), admin).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, title, slug string) (string, error) {
	const q = `
INSERT INTO categories (title, slug)
VALUES ($1, $2)
ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, title, slug).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID, creatorID string, p productSeed) error {
	const q = `
INSERT INTO products (title, slug, description, price, category_id, creator_id, state)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
ON CONFLICT (slug) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price = EXCLUDED.price
`
	_, err := pool.Exec(ctx, q, p.Title, p.Slug, p.Description, p.Price, categoryID, creatorID, p.State)
	return err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
