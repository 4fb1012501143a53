package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	h "conferenceplanner/internal/delivery/http/helpers"
	"conferenceplanner/internal/domain"
)

// ExemptRoutes is the set of paths the registration gate never guards.
// Entries ending in "/" match the whole subtree, mirroring ServeMux
// pattern semantics; all other entries match exactly.
type ExemptRoutes struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewExemptRoutes builds the exemption set from path patterns. The set is
// fixed at construction; there is no way to exempt a route at request time.
func NewExemptRoutes(paths ...string) *ExemptRoutes {
	e := &ExemptRoutes{exact: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			e.prefixes = append(e.prefixes, p)
			continue
		}
		e.exact[p] = struct{}{}
	}
	return e
}

// Contains reports whether path is exempt from the registration gate.
func (e *ExemptRoutes) Contains(path string) bool {
	if _, ok := e.exact[path]; ok {
		return true
	}
	for _, prefix := range e.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequireRegistration funnels authenticated users without an attendee
// profile to the welcome page. Anonymous requests and exempt paths pass
// straight through; the exemption check runs before the directory is
// consulted, so exempt routes cost no lookup.
func RequireRegistration(directory domain.DirectoryService, exempt *ExemptRoutes, welcomePath string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := UsernameFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if exempt.Contains(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			_, found, err := directory.Lookup(r.Context(), username)
			if err != nil {
				logger.ErrorContext(r.Context(), "registration gate lookup failed",
					"path", r.URL.Path,
					"method", r.Method,
					"username", username,
					"err", err,
				)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not verify registration")
				return
			}
			if !found {
				// 303 so a browser re-requests the welcome page with GET
				// regardless of the original method.
				http.Redirect(w, r, welcomePath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
