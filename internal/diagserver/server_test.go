package diagserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew_ServerSettings(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s := New("127.0.0.1:5090", ok)
	if s.httpServer == nil {
		t.Fatal("no underlying http.Server")
	}
	if s.httpServer.Addr != "127.0.0.1:5090" {
		t.Errorf("Addr = %q, want 127.0.0.1:5090", s.httpServer.Addr)
	}
	if s.httpServer.Handler == nil {
		t.Error("handler not installed")
	}
	if s.httpServer.ReadHeaderTimeout == 0 {
		t.Error("ReadHeaderTimeout not set; slowloris-style clients could pin connections")
	}
}

func TestServer_ShutdownUnblocksListen(t *testing.T) {
	s := New("127.0.0.1:0", http.NotFoundHandler())

	served := make(chan error, 1)
	go func() { served <- s.ListenAndServe() }()

	// Let the listener come up before tearing it down.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	select {
	case err := <-served:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("ListenAndServe() = %v, want http.ErrServerClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("ListenAndServe did not return after Shutdown")
	}
}

func TestNewRouter_MinimalConfig(t *testing.T) {
	// Nil logger and nil metrics handler must not panic.
	router := NewRouter(&RouterConfig{})
	if router == nil {
		t.Fatal("NewRouter returned nil")
	}

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestNewRouter_NoMetricsHandler(t *testing.T) {
	router := NewRouter(&RouterConfig{})

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 without metrics handler, got %d", rec.Code)
	}
}
