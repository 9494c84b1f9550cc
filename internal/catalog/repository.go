package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

const uniqueViolation = "23505"

// Repository is the persistence contract for catalog management.
type Repository interface {
	CreateTab(ctx context.Context, tab Tab) error
	ListTabs(ctx context.Context, tenantID uuid.UUID) ([]Tab, error)
	DeleteTab(ctx context.Context, tenantID, tabID uuid.UUID) error
	CreateProduct(ctx context.Context, p Product) error
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error
	GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, tenantID uuid.UUID) ([]Product, error)
}

// PGRepository provides PostgreSQL backed persistence for the catalog.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) CreateTab(ctx context.Context, tab Tab) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tabs (id, tenant_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		tab.ID, tab.TenantID, tab.Name, tab.CreatedAt)
	return mapPgError(err)
}

func (r *PGRepository) ListTabs(ctx context.Context, tenantID uuid.UUID) ([]Tab, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, name, created_at FROM tabs WHERE tenant_id = $1 ORDER BY created_at`,
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tabs []Tab
	for rows.Next() {
		var t Tab
		if err := rows.Scan(&t.ID, &t.TenantID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		tabs = append(tabs, t)
	}
	return tabs, rows.Err()
}

// DeleteTab removes the tab and orphans its products into
// "Uncategorized" (tab_id NULL) instead of deleting them.
func (r *PGRepository) DeleteTab(ctx context.Context, tenantID, tabID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`UPDATE products SET tab_id = NULL WHERE tenant_id = $1 AND tab_id = $2`,
		tenantID, tabID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM tabs WHERE tenant_id = $1 AND id = $2`, tenantID, tabID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *PGRepository) CreateProduct(ctx context.Context, p Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, tenant_id, tab_id, name, price, stock, is_in_house, image_url, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.TenantID, p.TabID, p.Name, p.Price, p.Stock, p.IsInHouse, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	return mapPgError(err)
}

func (r *PGRepository) UpdateProduct(ctx context.Context, p Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET tab_id = $1, name = $2, price = $3, stock = $4, is_in_house = $5, image_url = $6, updated_at = $7
		 WHERE tenant_id = $8 AND id = $9`,
		p.TabID, p.Name, p.Price, p.Stock, p.IsInHouse, p.ImageURL, p.UpdatedAt, p.TenantID, p.ID)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, tab_id, name, price, stock, is_in_house, image_url, created_at, updated_at
		 FROM products WHERE tenant_id = $1 AND id = $2`,
		tenantID, productID).
		Scan(&p.ID, &p.TenantID, &p.TabID, &p.Name, &p.Price, &p.Stock, &p.IsInHouse, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) ListProducts(ctx context.Context, tenantID uuid.UUID) ([]Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, tab_id, name, price, stock, is_in_house, image_url, created_at, updated_at
		 FROM products WHERE tenant_id = $1 ORDER BY name`,
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.TabID, &p.Name, &p.Price, &p.Stock, &p.IsInHouse, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return shared.ErrDuplicate
	}
	return err
}
