package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

// CacheBumper invalidates downstream read caches after a write. The
// analytics chart cache satisfies this.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service implements checkout and sales history.
type Service struct {
	repo     Repository
	bumper   CacheBumper
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService wires the billing service.
func NewService(repo Repository, bumper CacheBumper, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		bumper:   bumper,
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

// Checkout prices the cart against the current catalog, applies the
// discount, and persists bill, snapshot line items and stock
// decrements atomically. The line-item snapshots guarantee the
// invariant sum(quantity*price) == subtotal regardless of later
// catalog edits.
func (s *Service) Checkout(ctx context.Context, tenantID uuid.UUID, req CheckoutRequest) (*Bill, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, line := range req.Items {
		ids = append(ids, line.ProductID)
	}
	products, err := s.repo.ProductsForSale(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]SaleProduct, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	now := s.now()
	bill := Bill{
		ID:            uuid.New(),
		TenantID:      tenantID,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		PaymentMode:   req.PaymentMode,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     now,
	}

	for _, line := range req.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", shared.ErrNotFound, line.ProductID)
		}
		bill.Subtotal += product.Price * float64(line.Quantity)
		bill.Items = append(bill.Items, BillItem{
			ID:          uuid.New(),
			BillID:      bill.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
			CreatedAt:   now,
			InHouse:     product.IsInHouse,
		})
	}

	bill.FinalAmount = applyDiscount(bill.Subtotal, req.DiscountType, req.DiscountValue)

	if err := s.repo.CreateBill(ctx, bill); err != nil {
		return nil, err
	}

	if s.bumper != nil {
		if err := s.bumper.Bump(ctx); err != nil {
			// The bill is committed; a failed bump only delays chart freshness.
			s.logger.Warn("chart cache bump", slog.Any("error", err))
		}
	}

	s.logger.Info("bill generated",
		slog.String("bill_id", bill.ID.String()),
		slog.String("tenant_id", tenantID.String()),
		slog.Float64("final_amount", bill.FinalAmount),
		slog.String("payment_mode", string(bill.PaymentMode)))

	return &bill, nil
}

// applyDiscount computes the final amount, floored at zero.
func applyDiscount(subtotal float64, discountType DiscountType, value float64) float64 {
	final := subtotal
	switch discountType {
	case DiscountFlat:
		final = subtotal - value
	case DiscountPercentage:
		final = subtotal - subtotal*(value/100)
	}
	if final < 0 {
		final = 0
	}
	return final
}

// ListBills returns the tenant's sales history inside the window.
func (s *Service) ListBills(ctx context.Context, tenantID uuid.UUID, since, until time.Time) ([]Bill, error) {
	return s.repo.ListBills(ctx, tenantID, since, until)
}

// BillDetails returns one bill with its line items.
func (s *Service) BillDetails(ctx context.Context, tenantID, billID uuid.UUID) (*Bill, error) {
	return s.repo.GetBill(ctx, tenantID, billID)
}
