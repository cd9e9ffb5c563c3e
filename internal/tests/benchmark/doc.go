// Package benchmark measures waitqueue and rwmap performance.
//
// The suites are split per structure. A quick queue-only pass:
//
//	go test -bench 'BenchmarkQueue' -benchmem ./internal/tests/benchmark
//
// Most benchmarks fan out over preload sizes as sub-benchmarks; the
// defaults use SmallItemCounts so CI stays fast, switch a suite to
// ItemCounts for the full sweep up to 500k items.
//
// For comparing two revisions, collect enough samples for benchstat:
//
//	go test -bench . -benchmem -count=10 ./internal/tests/benchmark | tee new.txt
//	benchstat old.txt new.txt
package benchmark
