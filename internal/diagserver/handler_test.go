// Package diagserver provides the diagnostics HTTP server for synckit.
package diagserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yndnr/synckit-go/internal/telemetry/metric"
	"github.com/yndnr/synckit-go/pkg/rwmap"
	"github.com/yndnr/synckit-go/pkg/waitqueue"
)

// testRouter builds a router over live structures the way the bench
// command wires it.
func testRouter(t *testing.T) (http.Handler, *waitqueue.Queue[int], *rwmap.Map[string, int]) {
	t.Helper()

	queue := waitqueue.New[int]()
	records := rwmap.New[string, int]()

	reg := metric.NewRegistry()
	router := NewRouter(&RouterConfig{
		Snapshots: map[string]SnapshotSource{
			"queue": func() any { return queue.Snapshot() },
			"map":   func() any { return records.Snapshot() },
		},
		Metrics: reg.Handler(),
		Logger:  newTestLogger(t, "error", nil),
	})

	return router, queue, records
}

func TestHandler_Healthz(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got '%s'", resp["status"])
	}
	if resp["version"] == "" {
		t.Error("expected version in response")
	}
	if resp["time"] == "" {
		t.Error("expected time in response")
	}
}

func TestHandler_Snapshot(t *testing.T) {
	router, queue, records := testRouter(t)

	// Put the structures in a known state.
	queue.Push(1)
	queue.Push(2)
	queue.Push(3)
	if _, ok := queue.PopDefault(); !ok {
		t.Fatal("PopDefault failed")
	}
	records.Add("alpha", 1)
	records.Add("beta", 2)

	req := httptest.NewRequest("GET", "/snapshot", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	qs, ok := resp["queue"]
	if !ok {
		t.Fatal("expected 'queue' in snapshot")
	}
	if qs["adds"] != float64(3) {
		t.Errorf("expected queue adds 3, got %v", qs["adds"])
	}
	if qs["removes"] != float64(1) {
		t.Errorf("expected queue removes 1, got %v", qs["removes"])
	}
	if qs["size"] != float64(2) {
		t.Errorf("expected queue size 2, got %v", qs["size"])
	}

	ms, ok := resp["map"]
	if !ok {
		t.Fatal("expected 'map' in snapshot")
	}
	if ms["size"] != float64(2) {
		t.Errorf("expected map size 2, got %v", ms["size"])
	}
	if _, ok := ms["replace_existing"]; !ok {
		t.Error("expected replace_existing in map snapshot")
	}
}

func TestHandler_Snapshot_Empty(t *testing.T) {
	log := newTestLogger(t, "error", nil)
	router := NewRouter(&RouterConfig{Logger: log})

	req := httptest.NewRequest("GET", "/snapshot", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := strings.TrimSpace(rec.Body.String())
	if body != "{}" {
		t.Errorf("expected empty object, got %s", body)
	}
}

func TestHandler_Metrics(t *testing.T) {
	router, queue, _ := testRouter(t)

	queue.Push(42)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	// Registry always exports Go runtime collectors.
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected go_goroutines in metrics output")
	}
}

func TestHandler_UnknownPath(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest("POST", "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestHandler_RequestIDHeader(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on diagnostics responses")
	}
}
