// Package files stores uploaded assets (product images, recipe PDFs)
// as rows so the service needs no shared filesystem between replicas.
package files

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("file not found")

type File struct {
	ID          string
	Filename    string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

type Repo struct{ DB *pgxpool.Pool }

// Save stores the blob and returns its id, which doubles as the public
// URL path segment.
func (r *Repo) Save(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	id := uuid.NewString()
	_, err := r.DB.Exec(ctx, `
		INSERT INTO files (id, filename, content_type, data)
		VALUES ($1,$2,$3,$4)`,
		id, filename, contentType, data)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repo) Open(ctx context.Context, id string) (*File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var f File
	err := r.DB.QueryRow(ctx, `
		SELECT id, filename, content_type, data, created_at
		FROM files WHERE id=$1`, id,
	).Scan(&f.ID, &f.Filename, &f.ContentType, &f.Data, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
