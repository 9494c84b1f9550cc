package analytichttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukaan-pos/dukaan-pos/internal/analytics"
	"github.com/dukaan-pos/dukaan-pos/internal/analytics/export"
	"github.com/dukaan-pos/dukaan-pos/internal/platform/httpx"
	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

const requestTimeout = 5 * time.Second

const dateLayout = "2006-01-02"

// ChartService defines the dashboard data contract used by the handler.
type ChartService interface {
	Refresh(ctx context.Context, sess *analytics.Session, tenantID uuid.UUID, filter analytics.Filter) (*analytics.ChartData, error)
}

// RefreshMetrics counts completed chart refreshes.
type RefreshMetrics interface {
	ChartRefreshed(selector string)
}

// Handler coordinates HTTP requests for the sales dashboard. It keeps
// one Session per tenant so repeated loads under an unchanged filter
// can serve the last committed snapshot.
type Handler struct {
	logger  *slog.Logger
	service ChartService
	loc     *time.Location
	metrics RefreshMetrics

	mu       sync.Mutex
	sessions map[uuid.UUID]*analytics.Session

	csvPool sync.Pool
}

// NewHandler constructs the analytics HTTP handler. loc is the tenant
// timezone custom date params are parsed in.
func NewHandler(logger *slog.Logger, service ChartService, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	h := &Handler{
		logger:   logger,
		service:  service,
		loc:      loc,
		sessions: make(map[uuid.UUID]*analytics.Session),
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithMetrics attaches a refresh counter. Nil is allowed.
func (h *Handler) WithMetrics(m RefreshMetrics) *Handler {
	h.metrics = m
	return h
}

func (h *Handler) countRefresh(selector analytics.RangeSelector) {
	if h.metrics != nil {
		h.metrics.ChartRefreshed(string(selector))
	}
}

func (h *Handler) sessionFor(tenantID uuid.UUID) *analytics.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ok := h.sessions[tenantID]
	if !ok {
		sess = analytics.NewSession()
		h.sessions[tenantID] = sess
	}
	return sess
}

func (h *Handler) handleCharts(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	filter, err := parseFilter(r, h.loc)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data, err := h.service.Refresh(ctx, h.sessionFor(tenantID), tenantID, filter)
	if err != nil {
		h.respondRefreshError(w, err)
		return
	}
	if data == nil {
		// Custom selector without both dates: nothing to compute yet.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.countRefresh(filter.Selector)
	httpx.JSON(w, http.StatusOK, data)
}

// handleCached serves the tenant's last committed snapshot without
// touching the database, for tab switches that keep the filter.
func (h *Handler) handleCached(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	data := h.sessionFor(tenantID).Last()
	if data == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := shared.TenantFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrTenantMissing)
		return
	}

	filter, err := parseFilter(r, h.loc)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data, err := h.service.Refresh(ctx, h.sessionFor(tenantID), tenantID, filter)
	if err != nil {
		h.respondRefreshError(w, err)
		return
	}
	if data == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.countRefresh(filter.Selector)

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.csvPool.Put(buf)

	if err := export.WriteCSV(buf, data); err != nil {
		h.logger.Error("export csv", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "could not render CSV")
		return
	}

	filename := fmt.Sprintf("dashboard-%s-%s.csv", filter.Selector, data.GeneratedAt.Format(dateLayout))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) respondRefreshError(w http.ResponseWriter, err error) {
	if errors.Is(err, analytics.ErrUnknownSelector) {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", err.Error())
		return
	}
	h.logger.Error("chart refresh", slog.Any("error", err))
	// The session kept its previous snapshot; the client may retry.
	httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrUpstream, err))
}

// parseFilter reads range/from/to query params. from and to are only
// meaningful for the custom selector and are parsed at local midnight.
func parseFilter(r *http.Request, loc *time.Location) (analytics.Filter, error) {
	filter := analytics.Filter{Selector: analytics.RangeToday}
	if raw := r.URL.Query().Get("range"); raw != "" {
		filter.Selector = analytics.RangeSelector(raw)
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			return filter, fmt.Errorf("from date: %w", err)
		}
		filter.From = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			return filter, fmt.Errorf("to date: %w", err)
		}
		filter.To = t
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return filter, errors.New("to date precedes from date")
	}
	return filter, nil
}
