package httpapi

import (
	"net/http"
	"time"

	"github.com/orangecloud/blogd/internal/auth"
)

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// httpJar adapts a request/response pair to the views.CookieJar
// capability.
type httpJar struct {
	w http.ResponseWriter
	r *http.Request
}

func (j httpJar) Has(name string) bool {
	_, err := j.r.Cookie(name)
	return err == nil
}

func (j httpJar) Set(name, value string, maxAge time.Duration) {
	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
