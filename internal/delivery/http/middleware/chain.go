package middleware

import "net/http"

// Chain wraps h with the given middleware. The first middleware listed is
// the outermost, so requests pass through the list in declaration order.
// Ordering matters: identity must run before the registration gate, and the
// request ID before anything that logs.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
