// Package workload drives concurrent producer/consumer load.
package workload

import (
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/spaolacci/murmur3"
)

// Job is one unit of work pushed through the queue.
type Job struct {
	// ID is the unique job identifier.
	ID ulid.ULID

	// Producer is the index of the producer that pushed the job.
	Producer int

	// Seq is the per-producer sequence number.
	Seq int
}

// RecordKey derives the record map key for a job using MurmurHash3,
// bounded to the configured key space.
func RecordKey(id ulid.ULID, keySpace int) uint64 {
	return murmur3.Sum64(id[:]) % uint64(keySpace)
}

// Record accumulates the jobs folded into one map key.
//
// Record handles are shared between consumers, so mutation goes through
// note() under the record's own lock.
type Record struct {
	mu    sync.Mutex
	count int
	last  ulid.ULID
}

func (r *Record) note(id ulid.ULID) {
	r.mu.Lock()
	r.count++
	r.last = id
	r.mu.Unlock()
}

// Total returns how many jobs folded into this record.
func (r *Record) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Last returns the ID of the most recent job folded into this record.
func (r *Record) Last() ulid.ULID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
