// Package rwmap provides a concurrent map with configurable collision
// policy and shared-ownership value handles.
//
// This package implements a reader-writer locked map with the following
// features:
//
//   - Insert-or-Fetch: Add returns the existing handle on collision by
//     default, so racing writers converge on one value per key
//   - Collision Policy: per-instance replace-existing / fail-on-collision
//     flags, togglable at runtime without taking the map lock
//   - Shared Handles: values are held and returned as pointers that stay
//     valid after the entry is removed or overwritten
//   - Locked Scan: first-match linear search under the shared lock
//   - Monotonic Counters: lock-free add/remove counters for reconciliation
//   - Diagnostics: an unconditional counter snapshot for external reporting
//
// Usage:
//
//	m := rwmap.New[string, Session]()
//	handle, ok := m.Add("sess-1", session) // insert or fetch existing
//	if found, ok := m.Find("sess-1"); ok {
//		use(found)
//	}
//
// Thread Safety:
//
// All operations are thread-safe. Lookups (Find, Len, Scan) take the shared
// lock; mutations (Add variants, Remove) take the exclusive lock for the
// whole call. Callbacks passed to AddFunc and Scan run while the lock is
// held and must not call back into the same map; doing so deadlocks.
// A Map must not be copied after first use; share a single instance by
// pointer.
//
// @req RQ-0102
// @design DS-0102
package rwmap
