package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	analytichttp "github.com/dukaan-pos/dukaan-pos/internal/analytics/http"
	"github.com/dukaan-pos/dukaan-pos/internal/billing"
	"github.com/dukaan-pos/dukaan-pos/internal/catalog"
	"github.com/dukaan-pos/dukaan-pos/internal/employees"
	"github.com/dukaan-pos/dukaan-pos/internal/observability"
	"github.com/dukaan-pos/dukaan-pos/internal/shared"
	"github.com/dukaan-pos/dukaan-pos/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	BillingHandler   *billing.Handler
	CatalogHandler   *catalog.Handler
	EmployeesHandler *employees.Handler
	AnalyticsHandler *analytichttp.Handler
	JobsHandler      *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router. Everything under /api is
// tenant-scoped and requires the tenant header.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(shared.TenantMiddleware)
		if params.BillingHandler != nil {
			params.BillingHandler.MountRoutes(api)
		}
		if params.CatalogHandler != nil {
			params.CatalogHandler.MountRoutes(api)
		}
		if params.EmployeesHandler != nil {
			params.EmployeesHandler.MountRoutes(api)
		}
		if params.AnalyticsHandler != nil {
			params.AnalyticsHandler.MountRoutes(api)
		}
	})

	return r
}
