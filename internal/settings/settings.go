package settings

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/akshayam/wellness-store.git/internal/redisx"
)

const KeyMinimumOrderValue = "minimum_order_value"

var ErrNotFound = errors.New("setting not found")

// Setting values are integer cents so money stays decimal-safe.
type Setting struct {
	Key         string    `json:"key"`
	ValueCents  int64     `json:"value_cents"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Get(ctx context.Context, key string) (*Setting, error) {
	var s Setting
	err := r.DB.QueryRow(ctx,
		`SELECT key, value, description, updated_at FROM system_settings WHERE key=$1`, key,
	).Scan(&s.Key, &s.ValueCents, &s.Description, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) List(ctx context.Context) ([]Setting, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT key, value, description, updated_at FROM system_settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Setting{}
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.ValueCents, &s.Description, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, key string, value int64, description *string) (*Setting, error) {
	ct, err := r.DB.Exec(ctx, `
		UPDATE system_settings
		SET value=$2, description=COALESCE($3, description), updated_at=now()
		WHERE key=$1`, key, value, description)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, key)
}

// Cached reads the minimum-order-value through Redis with a short TTL;
// the database stays authoritative.
type Cached struct {
	Repo  *Repo
	Redis *redis.Client
}

func (c *Cached) MinimumOrderValue(ctx context.Context) (int64, bool, error) {
	if c.Redis != nil {
		if s, err := c.Redis.Get(ctx, redisx.KeyMinOrderValue).Result(); err == nil {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				return v, true, nil
			}
		}
	}
	s, err := c.Repo.Get(ctx, KeyMinimumOrderValue)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if c.Redis != nil {
		_ = c.Redis.Set(ctx, redisx.KeyMinOrderValue,
			strconv.FormatInt(s.ValueCents, 10), redisx.TTLSettingCache).Err()
	}
	return s.ValueCents, true, nil
}

// Invalidate drops the cached value after an admin update.
func (c *Cached) Invalidate(ctx context.Context) {
	if c.Redis != nil {
		_ = c.Redis.Del(ctx, redisx.KeyMinOrderValue).Err()
	}
}
