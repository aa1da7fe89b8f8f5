package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

// User accounts are created implicitly at order time; email is the
// natural key used for lookup.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, email, phone, address, password_hash, created_at
		FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Insert(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx, `
		INSERT INTO users (id, name, email, phone, address, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		u.ID, u.Name, u.Email, u.Phone, u.Address, u.PasswordHash,
	).Scan(&u.CreatedAt)
}

// SetPasswordHash overwrites only the password hash, leaving the rest of
// the profile untouched.
func (r *Repo) SetPasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.DB.Exec(ctx, `UPDATE users SET password_hash=$2 WHERE id=$1`, id, hash)
	return err
}

func (r *Repo) UpdateProfile(ctx context.Context, id, name, email, phone, address string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE users SET name=$2, email=$3, phone=$4, address=$5 WHERE id=$1`,
		id, name, email, phone, address)
	return err
}
