package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidID marks identifiers the store cannot even parse; callers
	// reduce it to a domain message instead of leaking a driver error.
	ErrInvalidID = errors.New("invalid id")
)

type Repo struct{ DB *pgxpool.Pool }

const productCols = `id, name, description, category_id, price_cents, quantity, image_url, ord, created_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.PriceCents,
		&p.Quantity, &p.ImageURL, &p.Order, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetProduct(ctx context.Context, id string) (*Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	return scanProduct(r.DB.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id=$1`, id))
}

// ListProducts returns products sorted by display order, optionally
// filtered by category.
func (r *Repo) ListProducts(ctx context.Context, categoryID string) ([]Product, error) {
	q := `SELECT ` + productCols + ` FROM products`
	args := []any{}
	if categoryID != "" {
		q += ` WHERE category_id=$1`
		args = append(args, categoryID)
	}
	q += ` ORDER BY ord`
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) CreateProduct(ctx context.Context, p *Product) error {
	// verify the category reference before writing
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE id=$1`, p.CategoryID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("invalid category ID: %w", ErrNotFound)
	}

	p.ID = uuid.NewString()
	return r.DB.QueryRow(ctx, `
		INSERT INTO products (id, name, description, category_id, price_cents, quantity, image_url, ord)
		VALUES ($1,$2,$3,$4,$5,$6,$7, (SELECT COALESCE(MAX(ord),0)+1 FROM products))
		RETURNING ord, created_at`,
		p.ID, p.Name, p.Description, p.CategoryID, p.PriceCents, p.Quantity, p.ImageURL,
	).Scan(&p.Order, &p.CreatedAt)
}

func (r *Repo) UpdateProduct(ctx context.Context, id string, upd ProductUpdate) (*Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	_, err := r.DB.Exec(ctx, `
		UPDATE products SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			price_cents = COALESCE($5, price_cents),
			quantity    = COALESCE($6, quantity),
			image_url   = COALESCE($7, image_url)
		WHERE id=$1`,
		id, upd.Name, upd.Description, upd.CategoryID, upd.PriceCents, upd.Quantity, upd.ImageURL)
	if err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, id)
}

func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ReorderProducts(ctx context.Context, items []ReorderItem) error {
	for _, it := range items {
		if _, err := r.DB.Exec(ctx, `UPDATE products SET ord=$2 WHERE id=$1`, it.ID, it.Order); err != nil {
			return err
		}
	}
	return nil
}

// AddStock applies a signed quantity adjustment to a product. This is
// the plain increment used by the edit workflow's restore/deduct steps.
func (r *Repo) AddStock(ctx context.Context, id string, delta int) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	ct, err := r.DB.Exec(ctx, `UPDATE products SET quantity = quantity + $2 WHERE id=$1`, id, delta)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeductIfAvailable decrements stock only when enough is on hand, in a
// single conditional update. Returns the remaining quantity on success,
// or the current quantity when the deduction was refused.
func (r *Repo) DeductIfAvailable(ctx context.Context, id string, qty int) (bool, int, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, 0, ErrInvalidID
	}
	var remaining int
	err := r.DB.QueryRow(ctx, `
		UPDATE products SET quantity = quantity - $2
		WHERE id=$1 AND quantity >= $2
		RETURNING quantity`, id, qty).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		var current int
		if err := r.DB.QueryRow(ctx, `SELECT quantity FROM products WHERE id=$1`, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, 0, ErrNotFound
			}
			return false, 0, err
		}
		return false, current, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, remaining, nil
}

// Quantities reports current stock for a set of products. Used by the
// inventory worker to refresh the Redis stock cache.
func (r *Repo) Quantities(ctx context.Context, ids []string) (map[string]int, error) {
	out := make(map[string]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.DB.Query(ctx, `SELECT id, quantity FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var q int
		if err := rows.Scan(&id, &q); err != nil {
			return nil, err
		}
		out[id] = q
	}
	return out, rows.Err()
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, description, image_url, ord, created_at FROM categories ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.Order, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) CreateCategory(ctx context.Context, c *Category) error {
	c.ID = uuid.NewString()
	return r.DB.QueryRow(ctx, `
		INSERT INTO categories (id, name, description, image_url, ord)
		VALUES ($1,$2,$3,$4, (SELECT COALESCE(MAX(ord),0)+1 FROM categories))
		RETURNING ord, created_at`,
		c.ID, c.Name, c.Description, c.ImageURL,
	).Scan(&c.Order, &c.CreatedAt)
}

func (r *Repo) UpdateCategory(ctx context.Context, id string, upd CategoryUpdate) (*Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	_, err := r.DB.Exec(ctx, `
		UPDATE categories SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			image_url   = COALESCE($4, image_url)
		WHERE id=$1`,
		id, upd.Name, upd.Description, upd.ImageURL)
	if err != nil {
		return nil, err
	}
	var c Category
	err = r.DB.QueryRow(ctx,
		`SELECT id, name, description, image_url, ord, created_at FROM categories WHERE id=$1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.Order, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCategory refuses to delete a category that still has products.
func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id=$1`, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("cannot delete category with existing products")
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ReorderCategories(ctx context.Context, items []ReorderItem) error {
	for _, it := range items {
		if _, err := r.DB.Exec(ctx, `UPDATE categories SET ord=$2 WHERE id=$1`, it.ID, it.Order); err != nil {
			return err
		}
	}
	return nil
}
