// Package config defines the bench configuration structure.
package config

import "time"

// Values a run starts from before file, environment and flags apply.
const (
	DefaultProducers       = 4
	DefaultConsumers       = 4
	DefaultJobsPerProducer = 100000
	DefaultPushRate        = 0
	DefaultPopTimeout      = 100 * time.Millisecond
	DefaultKeySpace        = 1024
	DefaultDuration        = 0 * time.Second

	DefaultDiagAddr = "127.0.0.1:5090"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default bench configuration.
func Default() *BenchConfig {
	return &BenchConfig{
		Workload: WorkloadSection{
			Producers:       DefaultProducers,
			Consumers:       DefaultConsumers,
			JobsPerProducer: DefaultJobsPerProducer,
			PushRate:        DefaultPushRate,
			PopTimeout:      DefaultPopTimeout,
			KeySpace:        DefaultKeySpace,
			Duration:        DefaultDuration,
		},
		Diag: DiagSection{
			Enabled: false,
			Addr:    DefaultDiagAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
