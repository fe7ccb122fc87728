package middleware

import (
	"net/http"
	"strings"

	"github.com/phrazzld/quill-api/internal/api"
	"github.com/phrazzld/quill-api/internal/domain"
)

// Access is the requirement a route places on the caller.
type Access int

const (
	// Authenticated requires any principal.
	Authenticated Access = iota
	// Public admits anonymous callers.
	Public
	// AdminOnly requires a principal with the ADMIN role.
	AdminOnly
)

// Rule applies Access to requests under Prefix. An empty Methods list
// matches every method.
type Rule struct {
	Prefix  string
	Methods []string
	Access  Access
}

func (r Rule) matches(req *http.Request) bool {
	path := req.URL.Path
	if path != r.Prefix && !strings.HasPrefix(path, strings.TrimSuffix(r.Prefix, "/")+"/") {
		return false
	}
	if len(r.Methods) == 0 {
		return true
	}
	for _, m := range r.Methods {
		if m == req.Method {
			return true
		}
	}
	return false
}

var readMethods = []string{http.MethodGet, http.MethodHead}

// DefaultRules is the access table of the blog API. The first matching rule
// wins; requests matching none require authentication.
var DefaultRules = []Rule{
	{Prefix: "/health", Access: Public},
	{Prefix: "/metrics", Access: Public},
	{Prefix: "/api/auth", Access: Public},
	{Prefix: "/api/posts", Methods: readMethods, Access: Public},
	{Prefix: "/api/categories", Methods: readMethods, Access: Public},
	{Prefix: "/api/tags", Methods: readMethods, Access: Public},
	{Prefix: "/api/users", Access: AdminOnly},
	{Prefix: "/api/categories", Access: AdminOnly},
	{Prefix: "/api/tags", Access: AdminOnly},
}

// Policy enforces a rule table before any handler runs.
type Policy struct {
	rules []Rule
}

// NewPolicy creates a Policy over rules.
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// AccessFor returns the requirement for req.
func (p *Policy) AccessFor(req *http.Request) Access {
	for _, rule := range p.rules {
		if rule.matches(req) {
			return rule.Access
		}
	}
	return Authenticated
}

// Enforce rejects anonymous callers on protected routes with 401 and
// principals lacking the required role with 403.
func (p *Policy) Enforce(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		access := p.AccessFor(r)
		if access == Public {
			next.ServeHTTP(w, r)
			return
		}

		principal, ok := domain.PrincipalFromContext(r.Context())
		if !ok {
			api.HandleAPIError(w, r, domain.NewUnauthorizedError(
				"Full authentication is required to access this resource"))
			return
		}
		if access == AdminOnly && !principal.IsAdmin() {
			api.HandleAPIError(w, r, domain.NewForbiddenError("Access denied"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
