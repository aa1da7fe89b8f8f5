package cms

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Recipe struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url"`
	PDFURL      *string   `json:"pdf_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RecipeUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	PDFURL      *string `json:"pdf_url"`
}

type RecipeRepo struct{ DB *pgxpool.Pool }

const recipeCols = `id, name, description, image_url, pdf_url, created_at, updated_at`

func scanRecipe(row pgx.Row) (*Recipe, error) {
	var rc Recipe
	err := row.Scan(&rc.ID, &rc.Name, &rc.Description, &rc.ImageURL, &rc.PDFURL, &rc.CreatedAt, &rc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *RecipeRepo) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+recipeCols+` FROM recipes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Recipe{}
	for rows.Next() {
		rc, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rc)
	}
	return out, rows.Err()
}

func (r *RecipeRepo) Get(ctx context.Context, id string) (*Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return scanRecipe(r.DB.QueryRow(ctx, `SELECT `+recipeCols+` FROM recipes WHERE id=$1`, id))
}

func (r *RecipeRepo) Create(ctx context.Context, rc *Recipe) error {
	rc.ID = uuid.NewString()
	return r.DB.QueryRow(ctx, `
		INSERT INTO recipes (id, name, description, image_url, pdf_url)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		rc.ID, rc.Name, rc.Description, rc.ImageURL, rc.PDFURL,
	).Scan(&rc.CreatedAt, &rc.UpdatedAt)
}

func (r *RecipeRepo) Update(ctx context.Context, id string, upd RecipeUpdate) (*Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE recipes SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			image_url   = COALESCE($4, image_url),
			pdf_url     = COALESCE($5, pdf_url),
			updated_at  = now()
		WHERE id=$1`,
		id, upd.Name, upd.Description, upd.ImageURL, upd.PDFURL)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *RecipeRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM recipes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
