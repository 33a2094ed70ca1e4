// internal/server/timeouts.go
//
// http.Server construction for the API listener.
//
// Limits
// ------
//   - 5 s to read request headers, so idle half-open clients are dropped.
//   - 10 s to read the full request; POST bodies are small JSON.
//   - 15 s to write a response; every handler answers from memory.
//   - 60 s before an idle keep-alive connection is closed.
//
// On shutdown, Run gives in-flight requests ShutdownGrace to finish.
package server

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second

	// ShutdownGrace bounds srv.Shutdown after a stop signal.
	ShutdownGrace = 10 * time.Second
)

// New returns a server for handler bound to addr.  The listener is opened
// by Run, not here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
