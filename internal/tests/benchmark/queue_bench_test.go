package benchmark

import (
	"fmt"
	"testing"
	"time"

	"github.com/yndnr/synckit-go/pkg/waitqueue"
)

// BenchmarkQueuePush benchmarks pushes at various queue depths.
func BenchmarkQueuePush(b *testing.B) {
	counts := SmallItemCounts // Use small counts for CI; change to ItemCounts for full test

	for _, preload := range counts {
		b.Run(fmt.Sprintf("preload_%d", preload), func(b *testing.B) {
			q := waitqueue.New[benchJob]()
			prefillQueue(q, preload)

			job := benchJob{ID: newJobID()}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				job.Seq = i
				q.Push(job)
			}

			b.StopTimer()
			reportMemory(b, "mem")
		})
	}
}

// BenchmarkQueuePop benchmarks pops from a non-empty queue.
func BenchmarkQueuePop(b *testing.B) {
	b.Run("pop_sequential", func(b *testing.B) {
		q := waitqueue.New[benchJob]()

		job := benchJob{ID: newJobID()}
		for i := 0; i < b.N; i++ {
			job.Seq = i
			q.Push(job)
		}

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if _, ok := q.PopDefault(); !ok {
				b.Fatalf("PopDefault failed at %d", i)
			}
		}
	})
}

// BenchmarkQueuePushPop benchmarks paired push/pop at steady depth.
func BenchmarkQueuePushPop(b *testing.B) {
	runWithItemCounts(b, SmallItemCounts, func(b *testing.B, count int) {
		q := waitqueue.New[benchJob]()
		prefillQueue(q, count)

		job := benchJob{ID: newJobID()}

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			job.Seq = i
			q.Push(job)
			if _, ok := q.PopDefault(); !ok {
				b.Fatal("PopDefault failed")
			}
		}
	})
}

// BenchmarkQueuePopMiss benchmarks the timed-out miss path.
func BenchmarkQueuePopMiss(b *testing.B) {
	q := waitqueue.New[benchJob]()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, ok := q.Pop(time.Millisecond); ok {
			b.Fatal("expected miss on empty queue")
		}
	}
}

// BenchmarkQueueSnapshot benchmarks snapshot export at various depths.
func BenchmarkQueueSnapshot(b *testing.B) {
	runWithItemCounts(b, SmallItemCounts, func(b *testing.B, count int) {
		q := waitqueue.New[benchJob]()
		prefillQueue(q, count)

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			s := q.Snapshot()
			if s.Size != count {
				b.Fatalf("Size = %d, want %d", s.Size, count)
			}
		}
	})
}

// BenchmarkQueueConcurrent benchmarks mixed concurrent operations.
func BenchmarkQueueConcurrent(b *testing.B) {
	q := waitqueue.New[benchJob]()
	prefillQueue(q, 10000)

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		job := benchJob{ID: newJobID()}
		i := 0
		for pb.Next() {
			switch i % 3 {
			case 0: // Push
				job.Seq = i
				q.Push(job)
			case 1: // Pop
				q.Pop(time.Millisecond)
			case 2: // Len
				q.Len()
			}
			i++
		}
	})
}
