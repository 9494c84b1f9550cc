package employees

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a staff account scoped to one tenant. The PIN hash never
// leaves the server.
type Employee struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string    `json:"name" db:"name"`
	PINHash   string    `json:"-" db:"pin_hash"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ActivityEntry records one employee action, currently login events.
type ActivityEntry struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	EmployeeID uuid.UUID `json:"employee_id" db:"employee_id"`
	Action     string    `json:"action" db:"action"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type CreateEmployeeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	PIN  string `json:"pin" validate:"required,len=4,numeric"`
}

type LoginRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
	PIN        string    `json:"pin" validate:"required,len=4,numeric"`
}
