package auth

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAdminNotFound = errors.New("admin not found")

type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
}

type AdminRepo struct{ DB *pgxpool.Pool }

func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	var a Admin
	err := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, email FROM admins WHERE username=$1`,
		username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// EnsureDefault seeds the bootstrap admin account if it does not exist.
func (r *AdminRepo) EnsureDefault(ctx context.Context, username, password string, h Hasher) error {
	if _, err := r.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, ErrAdminNotFound) {
		return err
	}
	hash, err := h.Hash(password)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx,
		`INSERT INTO admins (id, username, password_hash, email) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (username) DO NOTHING`,
		uuid.NewString(), username, hash, username)
	if err == nil {
		log.Printf("default admin user ready: username=%s", username)
	}
	return err
}
