package httpapi

import (
	"net/http"
	"strings"

	"github.com/orangecloud/blogd/internal/auth"
	"github.com/orangecloud/blogd/internal/metrics"
)

// gate blocks unauthenticated access to the admin surface. Denial is
// fail-closed: a missing cookie, empty secret, or failed verification
// all end the same way, a JSON 401 for API paths and a redirect to the
// login page for everything else.
func (rt *Router) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.Protected(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if c, err := r.Cookie(auth.CookieName); err == nil && rt.codec.Verify(c.Value) {
			next.ServeHTTP(w, r)
			return
		}
		metrics.AuthDenied.Inc()
		if strings.HasPrefix(r.URL.Path, "/api/") {
			respondErr(w, http.StatusUnauthorized, "UNAUTHORIZED", "not logged in")
			return
		}
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
	})
}
