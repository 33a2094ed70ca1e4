package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"xff_first", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:1234", "203.0.113.7"},
		{"xff_skips_garbage", map[string]string{"X-Forwarded-For": "bogus, 198.51.100.4"}, "10.0.0.2:1234", "198.51.100.4"},
		{"real_ip", map[string]string{"X-Real-Ip": "198.51.100.9"}, "10.0.0.2:1234", "198.51.100.9"},
		{"remote_addr", nil, "192.0.2.1:5555", "192.0.2.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.header {
				r.Header.Set(k, v)
			}
			if got := clientIP(r); got.String() != tc.want {
				t.Errorf("clientIP = %v, want %s", got, tc.want)
			}
		})
	}
}

func TestEnrichAttachesInfo(t *testing.T) {
	var got *RequestInfo
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.Header.Set("User-Agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	Enrich(nil)(next).ServeHTTP(httptest.NewRecorder(), r)

	if got == nil {
		t.Fatal("RequestInfo missing from context")
	}
	if got.UA.Browser != "Chrome" {
		t.Errorf("browser = %q, want Chrome", got.UA.Browser)
	}
	if got.UA.Device != "Desktop" {
		t.Errorf("device = %q, want Desktop", got.UA.Device)
	}
	if got.CountryISO != "" {
		t.Errorf("country = %q without a geo db", got.CountryISO)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestFromContextMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if FromContext(r.Context()) != nil {
		t.Fatal("expected nil without middleware")
	}
}
