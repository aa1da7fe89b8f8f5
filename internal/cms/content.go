package cms

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// Content is one CMS block, addressed by page and section.
type Content struct {
	ID        string    `json:"id"`
	Page      string    `json:"page"`
	Section   string    `json:"section"`
	Title     string    `json:"title"`
	Body      string    `json:"content"`
	LogoURL   *string   `json:"logo_url"`
	Order     int       `json:"order"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContentUpdate struct {
	Title   *string `json:"title"`
	Body    *string `json:"content"`
	LogoURL *string `json:"logo_url"`
	Order   *int    `json:"order"`
}

type ContentRepo struct{ DB *pgxpool.Pool }

const contentCols = `id, page, section, title, body, logo_url, ord, updated_at`

func scanContent(row pgx.Row) (*Content, error) {
	var c Content
	err := row.Scan(&c.ID, &c.Page, &c.Section, &c.Title, &c.Body, &c.LogoURL, &c.Order, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepo) GetByPage(ctx context.Context, page string) (*Content, error) {
	return scanContent(r.DB.QueryRow(ctx,
		`SELECT `+contentCols+` FROM content WHERE page=$1 LIMIT 1`, page))
}

func (r *ContentRepo) GetSection(ctx context.Context, page, section string) (*Content, error) {
	return scanContent(r.DB.QueryRow(ctx,
		`SELECT `+contentCols+` FROM content WHERE page=$1 AND section=$2`, page, section))
}

func (r *ContentRepo) List(ctx context.Context) ([]Content, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+contentCols+` FROM content ORDER BY ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *ContentRepo) Create(ctx context.Context, c *Content) error {
	c.ID = uuid.NewString()
	return r.DB.QueryRow(ctx, `
		INSERT INTO content (id, page, section, title, body, logo_url, ord)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING updated_at`,
		c.ID, c.Page, c.Section, c.Title, c.Body, c.LogoURL, c.Order,
	).Scan(&c.UpdatedAt)
}

func (r *ContentRepo) Update(ctx context.Context, id string, upd ContentUpdate) (*Content, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE content SET
			title    = COALESCE($2, title),
			body     = COALESCE($3, body),
			logo_url = COALESCE($4, logo_url),
			ord      = COALESCE($5, ord),
			updated_at = now()
		WHERE id=$1`,
		id, upd.Title, upd.Body, upd.LogoURL, upd.Order)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return scanContent(r.DB.QueryRow(ctx, `SELECT `+contentCols+` FROM content WHERE id=$1`, id))
}

func (r *ContentRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM content WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
