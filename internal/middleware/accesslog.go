// internal/middleware/accesslog.go
//
// Access logging and request metrics.
//
// One structured line per request, written after the handler returns:
// method, route pattern, path, status, bytes, duration, request id, and the
// client fields collected by requestinfo.Enrich.  The same pass feeds the
// Prometheus request counter and latency histogram.  The route label is
// the chi pattern ("/api/data"), never the raw path, so unmatched URLs
// cannot blow up label cardinality.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/backend-api/internal/metrics"
	"github.com/yanizio/backend-api/internal/requestinfo"
)

// AccessLog returns middleware that logs each request to log.
func AccessLog(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				route := routePattern(r)
				elapsed := time.Since(start)

				metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
				metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

				fields := []any{
					"method", r.Method,
					"route", route,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration_ms", elapsed.Milliseconds(),
					"request_id", chimw.GetReqID(r.Context()),
				}
				if info := requestinfo.FromContext(r.Context()); info != nil {
					fields = append(fields,
						"ip", info.IP.String(),
						"country", info.CountryISO,
						"browser", info.UA.Browser,
						"device", info.UA.Device,
						"bot", info.UA.IsBot,
					)
				}

				switch {
				case status >= 500:
					log.Errorw("request", fields...)
				case status >= 400:
					log.Warnw("request", fields...)
				default:
					log.Infow("request", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// routePattern reports the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
