// internal/requestinfo/middleware.go
//
// HTTP middleware that attaches *RequestInfo to each request.
//
/*
Context
--------
This handler sits right after request-id assignment and before the access
logger.  For every request it:

  1. Parses the User-Agent header.
  2. Extracts the left-most client IP from X-Forwarded-For or X-Real-IP,
     falling back to `r.RemoteAddr`.
  3. Looks up the country when a GeoIP database was configured.
  4. Stores a `*RequestInfo` in `request.Context` under an unexported key.

Notes
-----
  • Look-ups are read-only, so the middleware is safe under concurrency.
  • Oxford commas, two spaces after periods.  No em dash.
*/
package requestinfo

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich returns middleware that attaches *RequestInfo and forwards.  geo
// may be nil.
func Enrich(geo *Geo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			info := &RequestInfo{
				UA:         parseUA(r.UserAgent()),
				IP:         ip,
				CountryISO: geo.Country(ip),
				Timestamp:  time.Now().UTC(),
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// clientIP extracts the left-most address from X-Forwarded-For or
// X-Real-IP, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}
