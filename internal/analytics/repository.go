package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Window bounds a row fetch. A zero End leaves the window open toward
// now (the fixed selectors query "since start of period").
type Window struct {
	Start time.Time
	End   time.Time
}

// Repository exposes the two read-only row fetches the core consumes.
// Both are scoped by tenant and window and return flat row sets; all
// bucketing happens in-process.
type Repository interface {
	FetchBills(ctx context.Context, tenantID uuid.UUID, w Window) ([]BillRow, error)
	FetchLineItems(ctx context.Context, tenantID uuid.UUID, w Window) ([]LineItemRow, error)
}

// PGRepository provides PostgreSQL backed row fetches.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FetchBills returns the bill rows for the tenant inside the window.
func (r *PGRepository) FetchBills(ctx context.Context, tenantID uuid.UUID, w Window) ([]BillRow, error) {
	query := `SELECT id, final_amount, payment_mode, created_at FROM bills WHERE tenant_id = $1 AND created_at >= $2`
	args := []interface{}{tenantID, w.Start}
	if !w.End.IsZero() {
		query += ` AND created_at <= $3`
		args = append(args, w.End)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []BillRow
	for rows.Next() {
		var (
			id   uuid.UUID
			bill BillRow
		)
		if err := rows.Scan(&id, &bill.FinalAmount, &bill.PaymentMode, &bill.CreatedAt); err != nil {
			return nil, err
		}
		bill.ID = id.String()
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bills, nil
}

// FetchLineItems returns the bill line item rows for the tenant inside
// the window.
func (r *PGRepository) FetchLineItems(ctx context.Context, tenantID uuid.UUID, w Window) ([]LineItemRow, error) {
	query := `SELECT product_name, quantity, price, created_at FROM bill_items WHERE tenant_id = $1 AND created_at >= $2`
	args := []interface{}{tenantID, w.Start}
	if !w.End.IsZero() {
		query += ` AND created_at <= $3`
		args = append(args, w.End)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LineItemRow
	for rows.Next() {
		var item LineItemRow
		if err := rows.Scan(&item.ProductName, &item.Quantity, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
