// Package config defines the bench configuration structure.
package config

import "time"

// BenchConfig is the root configuration for synckit-bench.
type BenchConfig struct {
	Workload WorkloadSection `koanf:"workload"`
	Diag     DiagSection     `koanf:"diag"`
	Log      LogSection      `koanf:"log"`
}

// WorkloadSection configures the producer/consumer workload.
type WorkloadSection struct {
	// Producers is the number of producer goroutines.
	Producers int `koanf:"producers"`

	// Consumers is the number of consumer goroutines.
	Consumers int `koanf:"consumers"`

	// JobsPerProducer is the number of jobs each producer pushes.
	JobsPerProducer int `koanf:"jobs_per_producer"`

	// PushRate limits each producer to this many pushes per second.
	// Zero means unlimited.
	PushRate int `koanf:"push_rate"`

	// PopTimeout is how long a consumer waits for a job before
	// reporting a miss.
	PopTimeout time.Duration `koanf:"pop_timeout"`

	// KeySpace is the number of distinct record keys jobs fold into.
	KeySpace int `koanf:"key_space"`

	// ReplaceExisting makes record inserts overwrite existing keys.
	ReplaceExisting bool `koanf:"replace_existing"`

	// FailOnCollision makes record inserts reject existing keys.
	// Takes precedence over ReplaceExisting.
	FailOnCollision bool `koanf:"fail_on_collision"`

	// Duration caps the wall-clock run time. Zero means run until
	// all producers finish and the queue drains.
	Duration time.Duration `koanf:"duration"`
}

// DiagSection configures the diagnostics HTTP server.
type DiagSection struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// LogSection selects the log level and output format.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
