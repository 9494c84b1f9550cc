package shared

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TenantHeader carries the shop scope on every API request.
const TenantHeader = "X-Tenant-ID"

type tenantContextKey struct{}

// ContextWithTenant stores the tenant id in context.
func ContextWithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenantID)
}

// TenantFromContext extracts the tenant id from context.
func TenantFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(tenantContextKey{}).(uuid.UUID)
	return id, ok
}

// TenantMiddleware resolves the tenant header into the request context.
// Requests without a valid tenant id never reach a handler; tenant
// isolation relies on every query being scoped by this value.
func TenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(TenantHeader))
		if raw == "" {
			http.Error(w, "tenant id required", http.StatusUnauthorized)
			return
		}
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid tenant id", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithTenant(r.Context(), tenantID)))
	})
}
