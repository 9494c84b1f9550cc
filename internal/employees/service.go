package employees

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

const (
	actionLogin = "login"

	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// Service manages employee accounts and their activity log.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires the employees service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Create hashes the PIN with bcrypt and stores the account.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req CreateEmployeeRequest) (*Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}
	e := Employee{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      req.Name,
		PINHash:   string(hash),
		Active:    true,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}
	s.logger.Info("employee created", slog.String("employee_id", e.ID.String()), slog.String("tenant_id", tenantID.String()))
	return &e, nil
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Employee, error) {
	return s.repo.ListEmployees(ctx, tenantID)
}

func (s *Service) Deactivate(ctx context.Context, tenantID, employeeID uuid.UUID) error {
	if err := s.repo.DeactivateEmployee(ctx, tenantID, employeeID); err != nil {
		return err
	}
	s.logger.Info("employee deactivated", slog.String("employee_id", employeeID.String()), slog.String("tenant_id", tenantID.String()))
	return nil
}

// Login verifies the PIN against the stored hash and records the
// event in the activity log. Inactive accounts cannot log in.
func (s *Service) Login(ctx context.Context, tenantID uuid.UUID, req LoginRequest) (*Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	e, err := s.repo.GetEmployee(ctx, tenantID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !e.Active {
		return nil, fmt.Errorf("%w: account inactive", shared.ErrValidation)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PINHash), []byte(req.PIN)); err != nil {
		return nil, fmt.Errorf("%w: wrong pin", shared.ErrValidation)
	}

	entry := ActivityEntry{
		ID:         uuid.New(),
		TenantID:   tenantID,
		EmployeeID: e.ID,
		Action:     actionLogin,
		CreatedAt:  s.now(),
	}
	if err := s.repo.RecordActivity(ctx, entry); err != nil {
		// Login itself succeeded; a missing log line is a warning.
		s.logger.Warn("record activity", slog.Any("error", err))
	}
	return e, nil
}

// Activity returns a page of the tenant's activity log, newest first.
func (s *Service) Activity(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListActivity(ctx, tenantID, limit, offset)
}
