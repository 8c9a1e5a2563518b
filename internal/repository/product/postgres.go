package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"marketplace-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, title, slug, COALESCE(description, ''), price::text, category_id::text, creator_id::text, state, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR state = $1)
  AND ($2 = '' OR creator_id = $2::uuid)
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, f.State, f.CreatorID)
	if err != nil {
		r.logger.Printf("product repo: list state=%q creator=%q error=%v", f.State, f.CreatorID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	q := `
INSERT INTO products (title, slug, description, price, category_id, creator_id, state)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
RETURNING ` + productColumns + `
`
	out, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.Title, p.Slug, p.Description, p.Price.StringFixed(2), p.CategoryID, p.CreatorID, p.State))
	if err != nil {
		if uniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: create slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s slug=%s state=%s", out.ID, out.Slug, out.State)
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	q := `
UPDATE products
SET title = $2, slug = $3, description = $4, price = $5::numeric, category_id = $6, updated_at = now()
WHERE id = $1
RETURNING ` + productColumns + `
`
	out, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Title, p.Slug, p.Description, p.Price.StringFixed(2), p.CategoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || invalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		if uniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) UpdateState(ctx context.Context, id, from, to string, n *domain.Notification) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE products
SET state = $3, updated_at = now()
WHERE id = $1 AND state = $2
`, id, from, to)
	if err != nil {
		if invalidUUID(err) {
			return false, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update state id=%s %s->%s error=%v", id, from, to, err)
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		// The product moved under us or is gone; nothing was written.
		return false, nil
	}

	if n != nil {
		if _, err := tx.Exec(ctx, `
INSERT INTO notifications (user_id, product_id, message)
VALUES ($1, $2, $3)
`, n.UserID, n.ProductID, n.Message); err != nil {
			r.logger.Printf("product repo: notification insert user=%s error=%v", n.UserID, err)
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	r.logger.Printf("product repo: state updated id=%s %s->%s", id, from, to)
	return true, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if invalidUUID(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var price string
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &price,
		&p.CategoryID, &p.CreatorID, &p.State, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	dec, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	p.Price = dec
	return &p, nil
}

func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// invalidUUID catches malformed id input so callers see not-found instead of
// a database error.
func invalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
