// Package diagserver provides the diagnostics HTTP server for synckit.
package diagserver

import (
	"context"
	"net/http"
	"time"
)

// Server is the diagnostics HTTP endpoint, a thin wrapper over
// http.Server with timeouts suited to small, frequent scrapes.
//
// @design DS-0301
type Server struct {
	httpServer *http.Server
}

// New creates a diagnostics server on addr serving handler.
//
// @design DS-0301
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// ListenAndServe blocks serving requests until Shutdown or a listener
// error. After a clean Shutdown it returns http.ErrServerClosed.
//
// @design DS-0301
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight
// requests, up to ctx's deadline.
//
// @design DS-0301
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
