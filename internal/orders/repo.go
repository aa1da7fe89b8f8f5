package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderCols = `id, user_id, user_name, user_email, user_phone, user_address,
	total_cents, status, email_notification_failed, email_failure_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.UserName, &o.UserEmail, &o.UserPhone, &o.UserAddress,
		&o.TotalCents, &o.Status, &o.EmailNotificationFailed, &o.EmailFailureAt,
		&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) Insert(ctx context.Context, o *Order) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, user_name, user_email, user_phone, user_address,
			total_cents, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.UserID, o.UserName, o.UserEmail, o.UserPhone, o.UserAddress,
		o.TotalCents, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}
	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID string, items []OrderItem) error {
	for _, it := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, qty, price_cents, total_cents)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			orderID, it.ProductID, it.ProductName, it.Quantity, it.PriceCents, it.TotalCents)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) loadItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT product_id, product_name, qty, price_cents, total_cents
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.PriceCents, &it.TotalCents); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (*Order, error) {
	// malformed ids resolve to not-found, never to a driver error
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) SaveEdit(ctx context.Context, id string, items []OrderItem, totalCents int64, cust *CustomerSnapshot) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ct int64
	if cust != nil {
		tag, err := tx.Exec(ctx, `
			UPDATE orders SET total_cents=$2, updated_at=now(),
				user_name=$3, user_email=$4, user_phone=$5, user_address=$6
			WHERE id=$1`,
			id, totalCents, cust.Name, cust.Email, cust.Phone, cust.Address)
		if err != nil {
			return nil, err
		}
		ct = tag.RowsAffected()
	} else {
		tag, err := tx.Exec(ctx,
			`UPDATE orders SET total_cents=$2, updated_at=now() WHERE id=$1`, id, totalCents)
		if err != nil {
			return nil, err
		}
		ct = tag.RowsAffected()
	}
	if ct == 0 {
		return nil, ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
		return nil, err
	}
	if err := insertItems(ctx, tx, id, items); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *Repo) UpdateStatus(ctx context.Context, id string, st Status) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ct, err := r.DB.Exec(ctx,
		`UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, id, st)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	ct, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders WHERE user_email=$1 ORDER BY created_at DESC`, email)
}

func (r *Repo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items, err = r.loadItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MarkEmailFailed records notification-delivery exhaustion on the order.
// Best-effort bookkeeping for the dispatcher.
func (r *Repo) MarkEmailFailed(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE orders SET email_notification_failed=TRUE, email_failure_at=$2 WHERE id=$1`,
		id, at)
	return err
}
