package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/quill-api/internal/api/metrics"
)

// unmatchedRoute labels requests no route matched, keeping raw paths out of
// metric labels.
const unmatchedRoute = "unmatched"

// routeGroups label requests that were answered before routing, such as
// policy denials, by resource.
var routeGroups = []string{
	"/api/auth",
	"/api/users",
	"/api/categories",
	"/api/tags",
	"/api/posts",
	"/api/comments",
}

// routeLabel returns the chi route pattern of r, or the resource group when
// routing never ran.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	for _, group := range routeGroups {
		if r.URL.Path == group || strings.HasPrefix(r.URL.Path, group+"/") {
			return group + "/*"
		}
	}
	return unmatchedRoute
}

// Metrics records request counts and latency per chi route pattern.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := routeLabel(r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(r.Method, route, status, time.Since(start))
		})
	}
}
