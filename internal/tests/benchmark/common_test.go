package benchmark

import (
	"crypto/rand"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spaolacci/murmur3"

	"github.com/yndnr/synckit-go/pkg/rwmap"
	"github.com/yndnr/synckit-go/pkg/waitqueue"
)

// ItemCounts defines the item counts for benchmarking.
var ItemCounts = []int{5000, 10000, 50000, 100000, 500000}

// SmallItemCounts for quick benchmarks.
var SmallItemCounts = []int{1000, 5000, 10000}

// benchJob is the queue payload used across benchmarks.
type benchJob struct {
	ID  ulid.ULID
	Seq int
}

// benchRecord is the map value used across benchmarks.
type benchRecord struct {
	Count int
	Last  ulid.ULID
}

// newJobID generates a ULID for one benchmark job.
func newJobID() ulid.ULID {
	return ulid.Make()
}

// recordKey hashes an ID into a bounded key space.
func recordKey(id ulid.ULID, keySpace int) uint64 {
	return murmur3.Sum64(id[:]) % uint64(keySpace)
}

// prefillQueue fills q with count jobs, sharing one entropy source so
// the fill stays cheap at the larger counts.
func prefillQueue(q *waitqueue.Queue[benchJob], count int) []benchJob {
	entropy := ulid.Monotonic(rand.Reader, 0)
	now := ulid.Timestamp(time.Now())

	jobs := make([]benchJob, count)
	for i := range jobs {
		id, _ := ulid.New(now, entropy)
		jobs[i] = benchJob{ID: id, Seq: i}
		q.Push(jobs[i])
	}
	return jobs
}

// prefillMap stores one record per key in [0, count).
func prefillMap(m *rwmap.Map[uint64, benchRecord], count int) []uint64 {
	keys := make([]uint64, count)
	for i := range keys {
		keys[i] = uint64(i)
		m.Add(keys[i], benchRecord{Count: 1})
	}
	return keys
}

// reportMemory attaches post-run heap figures to the benchmark output.
func reportMemory(b *testing.B, prefix string) {
	runtime.GC()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	b.ReportMetric(float64(ms.HeapAlloc)/(1<<20), prefix+"_MB")
	b.ReportMetric(float64(ms.NumGC), prefix+"_GC")
}

// runWithItemCounts runs benchFn once per configured collection size.
func runWithItemCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("items_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
