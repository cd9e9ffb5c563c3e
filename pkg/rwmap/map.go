// Package rwmap provides a concurrent map with configurable collision policy.
package rwmap

import (
	"sync"
	"sync/atomic"
)

// snapshotType tags map snapshots with the structure name and schema
// version so external consumers can dispatch on the record shape.
const snapshotType = "ConcurrentMap/1.0.0"

// Map is a reader-writer locked map from K to shared *V handles. Handed-out
// handles remain valid after the entry is removed or overwritten; the map
// owns the association, never the value's lifetime.
//
// The zero value is not usable; call New. A Map must not be copied after
// first use.
type Map[K comparable, V any] struct {
	noCopy noCopy

	mu      sync.RWMutex
	entries map[K]*V

	// Collision policy. Read atomically at the top of each Add; a flip
	// racing an in-flight Add applies to the next call. Callers that need
	// read-flags-then-act atomicity must serialize flag changes against
	// their own Adds.
	replaceExisting atomic.Bool
	failOnCollision atomic.Bool

	adds    atomic.Uint64
	removes atomic.Uint64
}

// New creates an empty map with default policy: collisions return the
// existing handle unchanged (insert-or-fetch).
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{entries: make(map[K]*V)}
}

// Add stores a copy of value under key, subject to the collision policy.
// The returned handle is the stored one: the existing handle when the key
// collides under the default policy, the new one otherwise. ok is false
// only when fail-on-collision rejected the call.
func (m *Map[K, V]) Add(key K, value V) (*V, bool) {
	return m.insert(key, func() *V { return &value })
}

// AddPtr stores the caller's handle as-is under key, subject to the
// collision policy. The caller keeps full responsibility for what the
// handle points at, including nil.
func (m *Map[K, V]) AddPtr(key K, value *V) (*V, bool) {
	return m.insert(key, func() *V { return value })
}

// AddFunc stores the handle produced by create, subject to the collision
// policy. create runs only when the policy decides to store, synchronously
// under the exclusive lock: keep it fast, and never call back into the map
// from inside it (the lock is not reentrant).
func (m *Map[K, V]) AddFunc(key K, create func(K) *V) (*V, bool) {
	return m.insert(key, func() *V { return create(key) })
}

// insert applies the collision policy in one exclusive critical section:
//
//  1. key present and fail-on-collision     -> (nil, false), no mutation
//  2. key present and not replace-existing  -> (existing, true), no mutation
//  3. otherwise                             -> store build(), (new, true)
//
// build runs only in case 3, so the entry is never observable partially
// constructed: a panic inside build leaves the map and counters untouched.
func (m *Map[K, V]) insert(key K, build func() *V) (*V, bool) {
	replace := m.replaceExisting.Load()
	fail := m.failOnCollision.Load()

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[key]; ok {
		if fail {
			return nil, false
		}
		if !replace {
			return existing, true
		}
	}

	handle := build()
	m.entries[key] = handle
	m.adds.Add(1)
	return handle, true
}

// Remove deletes key and returns the handle it held. A miss returns
// (nil, false) and leaves the counters untouched.
func (m *Map[K, V]) Remove(key K) (*V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	handle, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	delete(m.entries, key)
	m.removes.Add(1)
	return handle, true
}

// Find returns the handle stored under key. The handle stays valid after
// the call regardless of concurrent Remove or replacement.
func (m *Map[K, V]) Find(key K) (*V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	handle, ok := m.entries[key]
	return handle, ok
}

// Len returns the current entry count. A point-in-time snapshot only.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Scan visits entries in unspecified order under the shared lock and
// returns the first handle pred accepts, or (nil, false) after a full
// traversal without a match. pred must not mutate the map or take its
// exclusive lock; doing so deadlocks.
func (m *Map[K, V]) Scan(pred func(key K, value *V) bool) (*V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for k, v := range m.entries {
		if pred(k, v) {
			return v, true
		}
	}
	return nil, false
}

// SetReplaceExisting switches Add collisions between insert-or-fetch
// (false, the default) and overwrite (true).
func (m *Map[K, V]) SetReplaceExisting(v bool) {
	m.replaceExisting.Store(v)
}

// ReplaceExisting reports the current replace-existing policy.
func (m *Map[K, V]) ReplaceExisting() bool {
	return m.replaceExisting.Load()
}

// SetFailOnCollision makes Add reject colliding keys outright when set.
// It takes precedence over replace-existing.
func (m *Map[K, V]) SetFailOnCollision(v bool) {
	m.failOnCollision.Store(v)
}

// FailOnCollision reports the current fail-on-collision policy.
func (m *Map[K, V]) FailOnCollision() bool {
	return m.failOnCollision.Load()
}

// AddCount returns the number of stored inserts (including overwrites)
// over the map's lifetime. Lock-free; never blocks.
func (m *Map[K, V]) AddCount() uint64 {
	return m.adds.Load()
}

// RemoveCount returns the number of successful removes over the map's
// lifetime. Lock-free; never blocks.
func (m *Map[K, V]) RemoveCount() uint64 {
	return m.removes.Load()
}

// Snapshot is a point-in-time view of the map's counters and policy for
// external reporting. Serializing it (or not) is the caller's concern.
type Snapshot struct {
	Type            string `json:"type"`
	Adds            uint64 `json:"adds"`
	Removes         uint64 `json:"removes"`
	Size            int    `json:"size"`
	ReplaceExisting bool   `json:"replace_existing"`
	FailOnCollision bool   `json:"fail_on_collision"`
}

// Snapshot returns the current counter snapshot. Counters and size are read
// under the shared lock so they reconcile with each other.
func (m *Map[K, V]) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Type:            snapshotType,
		Adds:            m.adds.Load(),
		Removes:         m.removes.Load(),
		Size:            len(m.entries),
		ReplaceExisting: m.replaceExisting.Load(),
		FailOnCollision: m.failOnCollision.Load(),
	}
}

// noCopy makes `go vet -copylocks` flag maps copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
