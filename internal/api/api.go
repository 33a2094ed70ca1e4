// internal/api/api.go
//
// JSON API surface.
//
// Context
// -------
// Every handler reads the immutable *app.State built at startup.  Nothing
// on the request path mutates shared state, so handlers need no locks.
//
// Middleware order (outermost first)
// ----------------------------------
//
//	RequestID → RealIP → requestinfo.Enrich → AccessLog → recoverer →
//	Security → ForceHTTPS → GetHead → router (CORS on /api/*)
//
// The recoverer sits inside AccessLog so a recovered panic is logged with
// its final 500 status.
//
// Notes
// -----
//   - Unmatched paths return 404 JSON, wrong methods 405 JSON.
//   - HEAD is answered by the GET handler so load-balancer probes pass.
//   - Oxford commas, two spaces after periods.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/backend-api/internal/app"
	"github.com/yanizio/backend-api/internal/middleware"
	"github.com/yanizio/backend-api/internal/requestinfo"
)

// Handler serves the /api routes.
type Handler struct {
	state *app.State
	log   *zap.SugaredLogger
	now   func() time.Time
}

// New returns a Handler reading from st.  A nil log uses zap.S().
func New(st *app.State, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.S()
	}
	return &Handler{
		state: st,
		log:   log.With("environment", st.Env.Name),
		now:   time.Now,
	}
}

// Options controls the outer middleware stack.
type Options struct {
	Geo         *requestinfo.Geo // nil disables country lookups
	CORSOrigins []string         // empty means "*"
	ForceHTTPS  bool
	Metrics     bool // mount /metrics
}

// Routes builds the full router.  The returned chi.Router may be extended
// with further routes by the caller.
func (h *Handler) Routes(opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestinfo.Enrich(opts.Geo))
	r.Use(middleware.AccessLog(h.log))
	r.Use(h.recoverer)
	r.Use(middleware.Security)
	r.Use(middleware.ForceHTTPS(opts.ForceHTTPS))
	r.Use(chimw.GetHead)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}))

		api.NotFound(h.notFound)
		api.MethodNotAllowed(h.methodNotAllowed)

		api.Get("/health", h.health)
		api.Get("/status", h.status)
		api.Get("/data", h.getData)
		api.Post("/data", h.postData)
		api.Get("/env-info", h.envInfo)
		api.Get("/secret-test", h.secretTest)
	})

	if opts.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	if h.state.Env.Debug {
		r.Mount("/debug", chimw.Profiler())
	}

	return r
}

// timestamp renders UTC time as ISO-8601 without a zone suffix.
func (h *Handler) timestamp() string {
	return h.now().UTC().Format("2006-01-02T15:04:05.000000")
}
