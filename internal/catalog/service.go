package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

// Service implements tab and product management.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires the catalog service.
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

func (s *Service) CreateTab(ctx context.Context, tenantID uuid.UUID, req CreateTabRequest) (*Tab, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	tab := Tab{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      req.Name,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateTab(ctx, tab); err != nil {
		return nil, err
	}
	s.logger.Info("tab created", slog.String("tab_id", tab.ID.String()), slog.String("tenant_id", tenantID.String()))
	return &tab, nil
}

func (s *Service) ListTabs(ctx context.Context, tenantID uuid.UUID) ([]Tab, error) {
	return s.repo.ListTabs(ctx, tenantID)
}

// DeleteTab removes a tab; its products move to the uncategorized
// bucket rather than being deleted with it.
func (s *Service) DeleteTab(ctx context.Context, tenantID, tabID uuid.UUID) error {
	if err := s.repo.DeleteTab(ctx, tenantID, tabID); err != nil {
		return err
	}
	s.logger.Info("tab deleted", slog.String("tab_id", tabID.String()), slog.String("tenant_id", tenantID.String()))
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	now := s.now()
	p := Product{
		ID:        uuid.New(),
		TenantID:  tenantID,
		TabID:     req.TabID,
		Name:      req.Name,
		Price:     req.Price,
		Stock:     req.Stock,
		IsInHouse: req.IsInHouse,
		ImageURL:  req.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product created", slog.String("product_id", p.ID.String()), slog.String("tenant_id", tenantID.String()))
	return &p, nil
}

// UpdateProduct applies a partial update; nil fields keep their
// current value.
func (s *Service) UpdateProduct(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	p, err := s.repo.GetProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if req.TabID != nil {
		p.TabID = req.TabID
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.IsInHouse != nil {
		p.IsInHouse = *req.IsInHouse
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	p.UpdatedAt = s.now()
	if err := s.repo.UpdateProduct(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, tenantID, productID); err != nil {
		return err
	}
	s.logger.Info("product deleted", slog.String("product_id", productID.String()), slog.String("tenant_id", tenantID.String()))
	return nil
}

func (s *Service) ListProducts(ctx context.Context, tenantID uuid.UUID) ([]Product, error) {
	return s.repo.ListProducts(ctx, tenantID)
}
