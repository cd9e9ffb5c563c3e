// Package main provides the entry point for synckit-bench.
//
// The bench tool exercises the synckit collections end to end:
//
//   - Producers push ULID-identified jobs onto a waitable queue
//   - Consumers pop with a timeout and fold results into a concurrent map
//   - Collision policies, rates, and counts come from config, env, or flags
//   - A diagnostics HTTP server exposes health, snapshots, and metrics
//
// Usage:
//
//	synckit-bench run [flags]
//	synckit-bench run --producers 8 --consumers 8 --jobs 100000
//	synckit-bench --config bench.yaml run --diag-addr 127.0.0.1:5090
//	synckit-bench config show
//
// The final report is printed to stdout as JSON; logs go to stderr.
//
// @design DS-0501
package main
