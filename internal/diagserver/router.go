// Package diagserver provides the diagnostics HTTP server for synckit.
package diagserver

import (
	"net/http"

	"github.com/yndnr/synckit-go/internal/telemetry/logger"
)

// RouterConfig configures the diagnostics router.
type RouterConfig struct {
	// Snapshots maps a structure name to its snapshot source. Each
	// source is invoked on every GET /snapshot request.
	Snapshots map[string]SnapshotSource

	// Metrics serves GET /metrics when non-nil.
	Metrics http.Handler

	// Logger receives the access log. Defaults to logger.Default()
	// when nil.
	Logger logger.Logger
}

// NewRouter creates the diagnostics HTTP handler with the standard
// middleware chain applied.
//
// @design DS-0301
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := newHandler(cfg.Snapshots, cfg.Metrics)

	// First listed runs outermost. RequestID goes first so every
	// later line carries the ID; Recover sits inside AccessLog so a
	// panicking handler still produces both a JSON 500 and an access
	// line recording it.
	return Chain(h,
		RequestID(),
		AccessLog(log),
		Recover(),
	)
}
