package analytichttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dukaan-pos/dukaan-pos/internal/analytics"
	"github.com/dukaan-pos/dukaan-pos/internal/shared"
)

type stubRepo struct {
	bills []analytics.BillRow
	items []analytics.LineItemRow
	err   error
}

func (s *stubRepo) FetchBills(ctx context.Context, tenantID uuid.UUID, w analytics.Window) ([]analytics.BillRow, error) {
	return s.bills, s.err
}

func (s *stubRepo) FetchLineItems(ctx context.Context, tenantID uuid.UUID, w analytics.Window) ([]analytics.LineItemRow, error) {
	return s.items, nil
}

func newTestRouter(t *testing.T, repo analytics.Repository, now time.Time) http.Handler {
	t.Helper()
	svc := analytics.NewService(repo, nil, time.UTC)
	svc.WithNow(func() time.Time { return now })
	handler := NewHandler(slog.Default(), svc, time.UTC)

	r := chi.NewRouter()
	r.Use(shared.TenantMiddleware)
	handler.MountRoutes(r)
	return r
}

func doRequest(t *testing.T, router http.Handler, path string, tenantID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tenantID != "" {
		req.Header.Set(shared.TenantHeader, tenantID)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestChartsEndpointDefaultsToToday(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		bills: []analytics.BillRow{
			{ID: "a", FinalAmount: 120, PaymentMode: analytics.PaymentCash, CreatedAt: time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)},
		},
	}
	router := newTestRouter(t, repo, now)

	rr := doRequest(t, router, "/analytics/charts", uuid.NewString())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}

	var data analytics.ChartData
	if err := json.Unmarshal(rr.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Selector != analytics.RangeToday {
		t.Fatalf("selector = %s", data.Selector)
	}
	if len(data.Labels) != 16 {
		t.Fatalf("labels = %d, want 16", len(data.Labels))
	}
	if data.Summary.TotalSales != 120 {
		t.Fatalf("total = %.2f", data.Summary.TotalSales)
	}
}

func TestChartsEndpointCustomWithoutDatesReturnsNoContent(t *testing.T) {
	router := newTestRouter(t, &stubRepo{}, time.Now())
	rr := doRequest(t, router, "/analytics/charts?range=custom", uuid.NewString())
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestChartsEndpointRejectsUnknownRange(t *testing.T) {
	router := newTestRouter(t, &stubRepo{}, time.Now())
	rr := doRequest(t, router, "/analytics/charts?range=quarter", uuid.NewString())
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestChartsEndpointRejectsInvertedDates(t *testing.T) {
	router := newTestRouter(t, &stubRepo{}, time.Now())
	rr := doRequest(t, router, "/analytics/charts?range=custom&from=2025-03-10&to=2025-03-01", uuid.NewString())
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestChartsEndpointRequiresTenant(t *testing.T) {
	router := newTestRouter(t, &stubRepo{}, time.Now())
	rr := doRequest(t, router, "/analytics/charts", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestChartsEndpointMapsFetchErrorToBadGateway(t *testing.T) {
	repo := &stubRepo{err: context.DeadlineExceeded}
	router := newTestRouter(t, repo, time.Now())
	rr := doRequest(t, router, "/analytics/charts", uuid.NewString())
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestCachedEndpoint(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	router := newTestRouter(t, &stubRepo{}, now)
	tenantID := uuid.NewString()

	rr := doRequest(t, router, "/analytics/charts/cached", tenantID)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("cold cache status = %d", rr.Code)
	}

	if rr := doRequest(t, router, "/analytics/charts", tenantID); rr.Code != http.StatusOK {
		t.Fatalf("refresh status = %d", rr.Code)
	}

	rr = doRequest(t, router, "/analytics/charts/cached", tenantID)
	if rr.Code != http.StatusOK {
		t.Fatalf("warm cache status = %d", rr.Code)
	}

	// Another tenant still sees an empty session.
	rr = doRequest(t, router, "/analytics/charts/cached", uuid.NewString())
	if rr.Code != http.StatusNoContent {
		t.Fatalf("other tenant status = %d", rr.Code)
	}
}

func TestCSVEndpoint(t *testing.T) {
	now := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		bills: []analytics.BillRow{
			{ID: "a", FinalAmount: 100, PaymentMode: analytics.PaymentUPI, CreatedAt: time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)},
		},
	}
	router := newTestRouter(t, repo, now)

	rr := doRequest(t, router, "/analytics/charts/export.csv", uuid.NewString())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %s", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "label,revenue,cumulative_revenue,bills,cumulative_bills") {
		t.Fatalf("missing header: %s", body)
	}
	if !strings.Contains(body, "UPI,100.00") {
		t.Fatalf("missing payment split: %s", body)
	}
}

func TestParseFilterReadsDates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analytics/charts?range=custom&from=2025-03-01&to=2025-03-10", nil)
	filter, err := parseFilter(req, time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if filter.Selector != analytics.RangeCustom {
		t.Fatalf("selector = %s", filter.Selector)
	}
	if !filter.From.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from = %v", filter.From)
	}
	if !filter.To.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to = %v", filter.To)
	}
}
