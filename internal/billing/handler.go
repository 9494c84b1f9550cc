package billing

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dukaan-pos/dukaan-pos/internal/platform/httpx"
	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

// CheckoutMetrics counts completed checkouts.
type CheckoutMetrics interface {
	BillGenerated()
}

// Handler exposes billing over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
	metrics CheckoutMetrics
}

// NewHandler constructs the billing HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// WithMetrics attaches a checkout counter. Nil is allowed.
func (h *Handler) WithMetrics(m CheckoutMetrics) *Handler {
	h.metrics = m
	return h
}

// MountRoutes registers billing endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/bills", h.handleCheckout)
	r.Get("/bills", h.handleList)
	r.Get("/bills/{billID}", h.handleDetails)
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	var req CheckoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}

	bill, err := h.service.Checkout(r.Context(), tenantID, req)
	if err != nil {
		h.logger.Error("checkout", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.BillGenerated()
	}
	httpx.JSON(w, http.StatusCreated, bill)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	since, until, err := parseHistoryWindow(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Dates", err.Error())
		return
	}

	bills, err := h.service.ListBills(r.Context(), tenantID, since, until)
	if err != nil {
		h.logger.Error("list bills", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if bills == nil {
		bills = []Bill{}
	}
	httpx.JSON(w, http.StatusOK, bills)
}

func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	billID, err := uuid.Parse(chi.URLParam(r, "billID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Bill ID", "bill id must be a UUID")
		return
	}

	bill, err := h.service.BillDetails(r.Context(), tenantID, billID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bill)
}

// parseHistoryWindow reads optional from/to date params. The to-date is
// extended to end of day so the bound stays inclusive.
func parseHistoryWindow(r *http.Request) (time.Time, time.Time, error) {
	var since, until time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return since, until, err
		}
		since = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return since, until, err
		}
		until = t.Add(24*time.Hour - time.Second)
	}
	return since, until, nil
}
