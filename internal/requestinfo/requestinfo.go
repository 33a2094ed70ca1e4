//
//  internal/requestinfo/requestinfo.go
//
//  Per-request client metadata for the access log: user-agent family,
//  client IP, optional GeoIP country, and arrival time.  The structs are
//  inert and safe to log or JSON-encode.
//
//  Dependencies
//  • github.com/avct/uasurfer         (UA parsing)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup, optional)
//

package requestinfo

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties the access log records.
type UA struct {
	Browser string `json:"browser"` // "Chrome", "Firefox", …
	OS      string `json:"os"`      // "macOS", "Windows", …
	Device  string `json:"device"`  // "Desktop", "Phone", …
	IsBot   bool   `json:"is_bot"`
}

// RequestInfo is stored in the request context by Enrich.
type RequestInfo struct {
	UA         UA        `json:"ua"`
	IP         net.IP    `json:"ip"`
	CountryISO string    `json:"country,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

//
//  -----------------------------
//  GeoIP (optional)
//  -----------------------------
//

// Geo wraps a MaxMind reader.  A nil *Geo is valid and performs no lookups.
type Geo struct {
	r *geoip2.Reader
}

// OpenGeo opens a GeoLite2 Country or City database.
func OpenGeo(path string) (*Geo, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip db: %w", err)
	}
	return &Geo{r: r}, nil
}

// Country returns the ISO code for ip, or "" when unknown.
func (g *Geo) Country(ip net.IP) string {
	if g == nil || g.r == nil || ip == nil {
		return ""
	}
	rec, err := g.r.Country(ip)
	if err != nil {
		return ""
	}
	return rec.Country.IsoCode
}

// Close releases the database handle.
func (g *Geo) Close() error {
	if g == nil || g.r == nil {
		return nil
	}
	return g.r.Close()
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich, or nil.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(header string) UA {
	if header == "" {
		return UA{Browser: "Unknown", OS: "Unknown", Device: "Unknown"}
	}
	u := uasurfer.Parse(header)

	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}

	return UA{
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		OS:      osName,
		Device:  deviceTypeToString(u.DeviceType),
		IsBot:   u.IsBot(),
	}
}

// deviceTypeToString maps uasurfer.DeviceType to a user-friendly string.
func deviceTypeToString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	case uasurfer.DeviceTV:
		return "TV"
	default:
		return "Unknown"
	}
}
