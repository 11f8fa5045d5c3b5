package volr

import (
	"errors"
	"fmt"
)

// Common errors returned by render entry points.
var (
	// ErrNilVolume is returned when a render call receives a nil volume.
	ErrNilVolume = errors.New("volr: nil volume")

	// ErrNilCamera is returned when a render call receives a nil camera.
	ErrNilCamera = errors.New("volr: nil camera")

	// ErrNoPrimitives is returned when a geometry pass has nothing to render.
	ErrNoPrimitives = errors.New("volr: no primitives")
)

// ConfigError reports a malformed Volume, Camera or render setting.
// Construction fails fast with a ConfigError; malformed inputs never
// reach traversal.
type ConfigError struct {
	// Field names the offending parameter (e.g. "spacing", "view_up").
	Field string

	// Reason describes why the value was rejected.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("volr: invalid %s: %s", e.Field, e.Reason)
}

// configErrf builds a ConfigError with a formatted reason.
func configErrf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
