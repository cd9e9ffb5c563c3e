// Package command provides CLI command definitions for synckit-bench.
//
// The commands are built on urfave/cli/v2. App (root.go) wires the
// global flags and the two subcommands: run (run.go) drives the
// workload, optionally with the diagnostics server and config hot
// reload, and config (config.go) inspects the merged configuration.
//
// Every command loads configuration the same way: defaults, then
// file, then environment, then explicit flags, then Verify. Logs go
// to stderr; the final run report is the only stdout output.
//
// @req RQ-0501
// @design DS-0501
package command
