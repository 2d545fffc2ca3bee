// Package httpserver constructs the process HTTP server with timeouts suited
// to short JSON request/response exchanges.
package httpserver

import (
	"net/http"
	"time"
)

// New builds the server. Per-request deadlines are enforced by the router's
// timeout middleware; these bound slow clients at the connection level.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
