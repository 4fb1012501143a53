package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	h "conferenceplanner/internal/delivery/http/helpers"
	"conferenceplanner/internal/domain"
)

// AuthCookieName is the HttpOnly cookie carrying the session token for
// browser clients. API clients use the Authorization header instead.
const AuthCookieName = "auth_token"

// WithIdentity resolves the requester's identity and stores the username in
// the request context. Requests without credentials pass through anonymous.
// An invalid Bearer token is rejected with 401; an invalid cookie is treated
// as anonymous and cleared, so a stale browser session does not lock the
// user out of public pages.
func WithIdentity(verifier domain.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth := r.Header.Get("Authorization"); auth != "" {
				const prefix = "Bearer "
				if !strings.HasPrefix(auth, prefix) {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
					return
				}
				token := strings.TrimSpace(auth[len(prefix):])
				if token == "" {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
					return
				}
				username, err := verifier.Verify(token)
				if err != nil {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
					return
				}
				next.ServeHTTP(w, r.WithContext(SetUsername(r.Context(), username)))
				return
			}

			if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
				username, err := verifier.Verify(cookie.Value)
				if err != nil {
					logger.DebugContext(r.Context(), "clearing stale auth cookie", "err", err)
					ClearAuthCookie(w)
					next.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, r.WithContext(SetUsername(r.Context(), username)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SetAuthCookie writes the session token cookie for browser clients.
func SetAuthCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie expires the session token cookie.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
