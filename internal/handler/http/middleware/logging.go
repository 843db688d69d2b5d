package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v3"
)

// LocalTime adds the deployment-local arrival time to the request log.
func LocalTime(loc *time.Location) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httplog.SetAttrs(r.Context(), slog.String("local_time", time.Now().In(loc).Format(time.RFC3339)))
			next.ServeHTTP(w, r)
		})
	}
}
