package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dukaan-pos/dukaan-pos/internal/platform/httpx"
	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

// Handler exposes the catalog over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the catalog HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers catalog endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/tabs", h.handleCreateTab)
	r.Get("/tabs", h.handleListTabs)
	r.Delete("/tabs/{tabID}", h.handleDeleteTab)
	r.Post("/products", h.handleCreateProduct)
	r.Get("/products", h.handleListProducts)
	r.Patch("/products/{productID}", h.handleUpdateProduct)
	r.Delete("/products/{productID}", h.handleDeleteProduct)
}

func (h *Handler) handleCreateTab(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	var req CreateTabRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}

	tab, err := h.service.CreateTab(r.Context(), tenantID, req)
	if err != nil {
		h.logger.Error("create tab", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tab)
}

func (h *Handler) handleListTabs(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	tabs, err := h.service.ListTabs(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("list tabs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if tabs == nil {
		tabs = []Tab{}
	}
	httpx.JSON(w, http.StatusOK, tabs)
}

func (h *Handler) handleDeleteTab(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	tabID, err := uuid.Parse(chi.URLParam(r, "tabID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Tab ID", "tab id must be a UUID")
		return
	}

	if err := h.service.DeleteTab(r.Context(), tenantID, tabID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	var req CreateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), tenantID, req)
	if err != nil {
		h.logger.Error("create product", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	products, err := h.service.ListProducts(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if products == nil {
		products = []Product{}
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Product ID", "product id must be a UUID")
		return
	}

	var req UpdateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), tenantID, productID, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Product ID", "product id must be a UUID")
		return
	}

	if err := h.service.DeleteProduct(r.Context(), tenantID, productID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
