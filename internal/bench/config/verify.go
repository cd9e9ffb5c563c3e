// Package config defines the bench configuration structure.
package config

import "errors"

// Verify rejects configurations the workload cannot run with.
func Verify(cfg *BenchConfig) error {
	if err := verifyWorkload(&cfg.Workload); err != nil {
		return err
	}
	if err := verifyDiag(&cfg.Diag); err != nil {
		return err
	}
	return nil
}

func verifyWorkload(cfg *WorkloadSection) error {
	if cfg.Producers < 1 {
		return errors.New("workload.producers must be at least 1")
	}
	if cfg.Consumers < 1 {
		return errors.New("workload.consumers must be at least 1")
	}
	if cfg.JobsPerProducer < 1 {
		return errors.New("workload.jobs_per_producer must be at least 1")
	}
	if cfg.PushRate < 0 {
		return errors.New("workload.push_rate must not be negative")
	}
	if cfg.PopTimeout <= 0 {
		return errors.New("workload.pop_timeout must be positive")
	}
	if cfg.KeySpace < 1 {
		return errors.New("workload.key_space must be at least 1")
	}
	if cfg.Duration < 0 {
		return errors.New("workload.duration must not be negative")
	}
	return nil
}

func verifyDiag(cfg *DiagSection) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Addr == "" {
		return errors.New("diag.addr is required when diag.enabled is true")
	}
	return nil
}
