package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

// Repository is the persistence contract the checkout service needs.
type Repository interface {
	ProductsForSale(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]SaleProduct, error)
	CreateBill(ctx context.Context, bill Bill) error
	ListBills(ctx context.Context, tenantID uuid.UUID, since, until time.Time) ([]Bill, error)
	GetBill(ctx context.Context, tenantID, billID uuid.UUID) (*Bill, error)
}

// PGRepository provides PostgreSQL backed persistence for bills.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ProductsForSale loads the catalog rows referenced by a cart.
func (r *PGRepository) ProductsForSale(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]SaleProduct, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price, stock, is_in_house FROM products WHERE tenant_id = $1 AND id = ANY($2)`,
		tenantID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []SaleProduct
	for rows.Next() {
		var p SaleProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.IsInHouse); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateBill writes the bill, its line items and the stock decrements
// in one transaction. In-house products have unlimited stock and are
// not decremented.
func (r *PGRepository) CreateBill(ctx context.Context, bill Bill) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO bills (id, tenant_id, subtotal, discount_type, discount_value, final_amount, payment_mode, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		bill.ID, bill.TenantID, bill.Subtotal, bill.DiscountType, bill.DiscountValue,
		bill.FinalAmount, bill.PaymentMode, bill.CreatedBy, bill.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	for _, item := range bill.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO bill_items (id, bill_id, tenant_id, product_id, product_name, quantity, price, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, bill.ID, bill.TenantID, item.ProductID, item.ProductName, item.Quantity, item.Price, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert bill item: %w", err)
		}

		if item.InHouse {
			continue
		}
		tag, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1
			 WHERE id = $2 AND tenant_id = $3 AND stock >= $1`,
			item.Quantity, item.ProductID, bill.TenantID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", shared.ErrInsufficientStock, item.ProductName)
		}
	}

	return tx.Commit(ctx)
}

// ListBills returns bills for the tenant, newest first. A zero until
// leaves the window open.
func (r *PGRepository) ListBills(ctx context.Context, tenantID uuid.UUID, since, until time.Time) ([]Bill, error) {
	query := `SELECT id, tenant_id, subtotal, discount_type, discount_value, final_amount, payment_mode, created_by, created_at
		FROM bills WHERE tenant_id = $1 AND created_at >= $2`
	args := []interface{}{tenantID, since}
	if !until.IsZero() {
		query += ` AND created_at <= $3`
		args = append(args, until)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(&b.ID, &b.TenantID, &b.Subtotal, &b.DiscountType, &b.DiscountValue,
			&b.FinalAmount, &b.PaymentMode, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bills, nil
}

// GetBill returns one bill with its line items.
func (r *PGRepository) GetBill(ctx context.Context, tenantID, billID uuid.UUID) (*Bill, error) {
	var b Bill
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, subtotal, discount_type, discount_value, final_amount, payment_mode, created_by, created_at
		 FROM bills WHERE tenant_id = $1 AND id = $2`,
		tenantID, billID).
		Scan(&b.ID, &b.TenantID, &b.Subtotal, &b.DiscountType, &b.DiscountValue,
			&b.FinalAmount, &b.PaymentMode, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, bill_id, product_id, product_name, quantity, price, created_at
		 FROM bill_items WHERE bill_id = $1 AND tenant_id = $2 ORDER BY created_at`,
		billID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		b.Items = append(b.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}
