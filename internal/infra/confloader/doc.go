// Package confloader loads layered configuration for synckit binaries.
//
// A Loader merges up to three layers into one koanf tree and unmarshals
// the result onto a caller-provided struct:
//
//  1. Defaults: whatever the caller pre-filled on the target struct
//  2. File: one YAML document (koanf file provider)
//  3. Environment: SYNCKIT_-prefixed variables (koanf env provider)
//
// Later layers win. Explicitly set command-line flags outrank all three;
// the command layer applies them onto the struct after Load returns.
//
// A Watcher (fsnotify) reports config file changes so long-running
// commands can re-run their load chain without restarting.
//
// @design DS-0502
package confloader
