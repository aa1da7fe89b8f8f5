package orders

import (
	"context"
	"fmt"
	"time"
)

// AnalyticsRow is one aggregation bucket: a product, or a week/month
// period rendered into the same shape for the admin dashboard.
type AnalyticsRow struct {
	ProductID          string  `json:"product_id"`
	ProductName        string  `json:"product_name"`
	Period             string  `json:"period,omitempty"`
	TotalQuantity      int64   `json:"total_quantity"`
	TotalRevenueCents  int64   `json:"total_revenue_cents"`
	OrderCount         int64   `json:"order_count"`
	AvgQuantityPerOrdr float64 `json:"avg_quantity_per_order,omitempty"`
	AvgRevenueCents    float64 `json:"avg_revenue_per_order_cents,omitempty"`
}

type Summary struct {
	TotalOrders        int64            `json:"total_orders"`
	TotalRevenueCents  int64            `json:"total_revenue_cents"`
	AvgOrderValueCents float64          `json:"avg_order_value_cents"`
	TotalItemsSold     int64            `json:"total_items_sold"`
	MinOrderValueCents int64            `json:"min_order_value_cents"`
	MaxOrderValueCents int64            `json:"max_order_value_cents"`
	StatusCounts       map[string]int64 `json:"status_counts"`
}

func dateFilter(col string, start, end *time.Time, args *[]any) string {
	cond := ""
	if start != nil {
		*args = append(*args, *start)
		cond += fmt.Sprintf(" AND %s >= $%d", col, len(*args))
	}
	if end != nil {
		*args = append(*args, *end)
		cond += fmt.Sprintf(" AND %s <= $%d", col, len(*args))
	}
	return cond
}

// Analytics aggregates line items by product (default) or by week/month
// bucket, optionally restricted to a creation-date range.
func (r *Repo) Analytics(ctx context.Context, start, end *time.Time, groupBy string) ([]AnalyticsRow, error) {
	switch groupBy {
	case "week", "month":
		return r.periodAnalytics(ctx, start, end, groupBy)
	default:
		return r.productAnalytics(ctx, start, end)
	}
}

func (r *Repo) productAnalytics(ctx context.Context, start, end *time.Time) ([]AnalyticsRow, error) {
	args := []any{}
	q := `
		SELECT i.product_id, MIN(i.product_name),
			SUM(i.qty), SUM(i.total_cents), COUNT(*),
			AVG(i.qty), AVG(i.total_cents)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE TRUE` + dateFilter("o.created_at", start, end, &args) + `
		GROUP BY i.product_id
		ORDER BY SUM(i.total_cents) DESC`

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AnalyticsRow{}
	for rows.Next() {
		var a AnalyticsRow
		if err := rows.Scan(&a.ProductID, &a.ProductName, &a.TotalQuantity,
			&a.TotalRevenueCents, &a.OrderCount, &a.AvgQuantityPerOrdr, &a.AvgRevenueCents); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) periodAnalytics(ctx context.Context, start, end *time.Time, unit string) ([]AnalyticsRow, error) {
	limit := 24
	if unit == "week" {
		limit = 52
	}
	args := []any{unit}
	q := `
		SELECT date_trunc($1, o.created_at) AS bucket,
			COUNT(DISTINCT o.id), SUM(i.qty), SUM(i.total_cents)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE TRUE` + dateFilter("o.created_at", start, end, &args) + `
		GROUP BY bucket
		ORDER BY bucket DESC
		LIMIT ` + fmt.Sprint(limit)

	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AnalyticsRow{}
	for rows.Next() {
		var bucket time.Time
		var a AnalyticsRow
		if err := rows.Scan(&bucket, &a.OrderCount, &a.TotalQuantity, &a.TotalRevenueCents); err != nil {
			return nil, err
		}
		if unit == "week" {
			year, week := bucket.ISOWeek()
			a.Period = fmt.Sprintf("Week %d, %d", week, year)
			a.ProductID = fmt.Sprintf("week-%d-%d", year, week)
		} else {
			a.Period = bucket.Format("Jan 2006")
			a.ProductID = fmt.Sprintf("month-%d-%d", bucket.Year(), int(bucket.Month()))
		}
		a.ProductName = a.Period
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) Summary(ctx context.Context, start, end *time.Time) (*Summary, error) {
	s := &Summary{StatusCounts: map[string]int64{}}

	args := []any{}
	q := `
		SELECT COUNT(*), COALESCE(SUM(total_cents),0), COALESCE(AVG(total_cents),0),
			COALESCE(MIN(total_cents),0), COALESCE(MAX(total_cents),0)
		FROM orders WHERE TRUE` + dateFilter("created_at", start, end, &args)
	if err := r.DB.QueryRow(ctx, q, args...).Scan(&s.TotalOrders, &s.TotalRevenueCents,
		&s.AvgOrderValueCents, &s.MinOrderValueCents, &s.MaxOrderValueCents); err != nil {
		return nil, err
	}

	args = []any{}
	q = `
		SELECT COALESCE(SUM(i.qty),0)
		FROM order_items i JOIN orders o ON o.id = i.order_id
		WHERE TRUE` + dateFilter("o.created_at", start, end, &args)
	if err := r.DB.QueryRow(ctx, q, args...).Scan(&s.TotalItemsSold); err != nil {
		return nil, err
	}

	args = []any{}
	q = `SELECT status, COUNT(*) FROM orders WHERE TRUE` +
		dateFilter("created_at", start, end, &args) + ` GROUP BY status`
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var st string
		var n int64
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		s.StatusCounts[st] = n
	}
	return s, rows.Err()
}
