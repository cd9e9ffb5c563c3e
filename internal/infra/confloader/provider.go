// Package confloader loads layered configuration for synckit binaries.
package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// errMapLayerBytes reports a mapLayer asked to serialize itself; the
// layer carries structured values and there is nothing to parse.
var errMapLayerBytes = errors.New("confloader: map layer carries structured values, not bytes")

// mapLayer adapts a flattened key/value map to koanf's Provider
// interface. With no parser attached koanf reads the structured form
// (Read); ReadBytes exists only to satisfy the interface.
type mapLayer map[string]any

// ReadBytes always fails; use Read.
func (m mapLayer) ReadBytes() ([]byte, error) {
	return nil, errMapLayerBytes
}

// Read hands koanf the map to merge. Dotted keys are unflattened into
// the nested form Unmarshal expects, so "workload.consumers" lands on
// the workload section rather than becoming a literal top-level key.
func (m mapLayer) Read() (map[string]any, error) {
	return maps.Unflatten(m, keyDelim), nil
}
