package employees

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

// Repository is the persistence contract for employee accounts.
type Repository interface {
	CreateEmployee(ctx context.Context, e Employee) error
	ListEmployees(ctx context.Context, tenantID uuid.UUID) ([]Employee, error)
	GetEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) (*Employee, error)
	DeactivateEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) error
	RecordActivity(ctx context.Context, entry ActivityEntry) error
	ListActivity(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]ActivityEntry, error)
}

// PGRepository provides PostgreSQL backed persistence for employees.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) CreateEmployee(ctx context.Context, e Employee) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO employees (id, tenant_id, name, pin_hash, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.TenantID, e.Name, e.PINHash, e.Active, e.CreatedAt)
	return err
}

func (r *PGRepository) ListEmployees(ctx context.Context, tenantID uuid.UUID) ([]Employee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, name, pin_hash, active, created_at
		 FROM employees WHERE tenant_id = $1 ORDER BY created_at`,
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.TenantID, &e.Name, &e.PINHash, &e.Active, &e.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *PGRepository) GetEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, pin_hash, active, created_at
		 FROM employees WHERE tenant_id = $1 AND id = $2`,
		tenantID, employeeID).
		Scan(&e.ID, &e.TenantID, &e.Name, &e.PINHash, &e.Active, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *PGRepository) DeactivateEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE employees SET active = FALSE WHERE tenant_id = $1 AND id = $2`,
		tenantID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) RecordActivity(ctx context.Context, entry ActivityEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO employee_activity (id, tenant_id, employee_id, action, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.TenantID, entry.EmployeeID, entry.Action, entry.CreatedAt)
	return err
}

func (r *PGRepository) ListActivity(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]ActivityEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, employee_id, action, created_at
		 FROM employee_activity WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.EmployeeID, &e.Action, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
