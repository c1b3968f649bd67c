package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ViewsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "post_views_recorded_total",
		Help: "View increments written to the store.",
	})
	ViewsDeduped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "post_views_deduped_total",
		Help: "View requests skipped because the dedupe cookie was present.",
	})
	AuthDenied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "admin_auth_denied_total",
		Help: "Requests to the admin surface denied by the gate.",
	})
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_login_total",
		Help: "Admin login attempts by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(ViewsRecorded, ViewsDeduped, AuthDenied, Logins)
}

func Handler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
