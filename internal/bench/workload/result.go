// Package workload drives concurrent producer/consumer load.
package workload

import (
	"time"

	"github.com/yndnr/synckit-go/pkg/rwmap"
	"github.com/yndnr/synckit-go/pkg/waitqueue"
)

// Result summarizes a completed workload run.
type Result struct {
	Pushed     uint64 `json:"pushed"`
	Popped     uint64 `json:"popped"`
	Misses     uint64 `json:"misses"`
	Collisions uint64 `json:"collisions"`
	Records    int    `json:"records"`

	Elapsed    time.Duration `json:"elapsed_ns"`
	Throughput float64       `json:"throughput_per_sec"`

	Queue waitqueue.Snapshot `json:"queue"`
	Map   rwmap.Snapshot     `json:"map"`
}

// result builds the Result from run counters and live snapshots.
func (r *Runner) result(elapsed time.Duration) *Result {
	res := &Result{
		Pushed:     r.pushed.Load(),
		Popped:     r.popped.Load(),
		Misses:     r.misses.Load(),
		Collisions: r.collisions.Load(),
		Records:    r.records.Len(),
		Elapsed:    elapsed,
		Queue:      r.queue.Snapshot(),
		Map:        r.records.Snapshot(),
	}
	if secs := elapsed.Seconds(); secs > 0 {
		res.Throughput = float64(res.Popped) / secs
	}
	return res
}
