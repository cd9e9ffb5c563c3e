// Package config defines the bench configuration structure.
//
// BenchConfig (spec.go) gathers everything a bench run needs: the
// workload shape, the diagnostics server and logging. Default
// (default.go) returns a config that runs out of the box, and Verify
// (verify.go) rejects values the workload cannot run with, such as
// zero worker counts, a nonpositive pop timeout, or an enabled
// diagnostics server without a listen address.
//
// Values are layered by internal/infra/confloader: defaults first,
// then a YAML file, then SYNCKIT_* environment variables, with CLI
// flags applied last by the command package.
//
// @req RQ-0502
// @design DS-0502
package config
