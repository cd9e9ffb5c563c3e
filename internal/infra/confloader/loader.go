// Package confloader loads layered configuration for synckit binaries.
//
// @design DS-0502
package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the prefix synckit binaries strip from environment
// variables when mapping them onto config keys.
const DefaultEnvPrefix = "SYNCKIT_"

// keyDelim separates nested config keys in their flattened spelling
// (workload.producers).
const keyDelim = "."

// Loader merges configuration layers into a single koanf tree. The merge
// order is fixed: the target struct's pre-filled fields act as defaults,
// a YAML file overrides them, environment variables override the file.
// Explicitly set command-line flags are the caller's layer and apply
// after Load returns.
type Loader struct {
	tree      *koanf.Koanf
	envPrefix string
	filePath  string
}

// Option adjusts a Loader at construction time.
type Option func(*Loader)

// WithEnvPrefix replaces DefaultEnvPrefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithConfigFile points the loader at a YAML config file. Without it,
// Load merges environment variables over the target's defaults only.
func WithConfigFile(path string) Option {
	return func(l *Loader) { l.filePath = path }
}

// NewLoader creates a Loader with the options applied.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		tree:      koanf.New(keyDelim),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load merges the configured layers and unmarshals the result onto
// target. Keys absent from every layer leave the corresponding target
// fields untouched, which is how defaults survive.
func (l *Loader) Load(target any) error {
	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return err
		}
	}
	if err := l.LoadEnv(); err != nil {
		return err
	}
	return l.Unmarshal(target)
}

// LoadFile merges one YAML document into the tree. An empty path is a
// no-op so callers can pass an unset flag straight through.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if err := l.tree.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv merges prefixed environment variables into the tree. Names map
// onto keys by stripping the prefix, lowercasing, and reading underscores
// as key separators: SYNCKIT_WORKLOAD_PRODUCERS becomes
// workload.producers. Leaf keys that contain underscores themselves
// (jobs_per_producer) are therefore file-only.
func (l *Loader) LoadEnv() error {
	toKey := func(name string) string {
		trimmed := strings.TrimPrefix(name, l.envPrefix)
		return strings.ReplaceAll(strings.ToLower(trimmed), "_", keyDelim)
	}

	if err := l.tree.Load(env.Provider(l.envPrefix, keyDelim, toKey), nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}
	return nil
}

// LoadMap merges pre-flattened key/value pairs. Tests and programmatic
// callers use it to inject a layer without touching the filesystem or
// the process environment.
func (l *Loader) LoadMap(values map[string]any) error {
	if err := l.tree.Load(mapLayer(values), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal writes the merged tree onto target via koanf struct tags.
func (l *Loader) Unmarshal(target any) error {
	if err := l.tree.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}
