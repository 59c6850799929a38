package platform

import "errors"

var (
	// ErrNoCurrentLine is returned by current-line operations when no line
	// has been selected.
	ErrNoCurrentLine = errors.New("platform: no current line selected")
	// ErrNotDynamic is returned when a current-line operation is invoked
	// on a standard-mode handle.
	ErrNotDynamic = errors.New("platform: record is not in dynamic mode")
	// ErrLineOutOfBounds is returned when a line index is outside the
	// sublist's committed range.
	ErrLineOutOfBounds = errors.New("platform: line index out of bounds")
	// ErrNotPersistable is returned by Save on a transient handle.
	ErrNotPersistable = errors.New("platform: record is not persistable")
	// ErrRecordNotFound is returned by Load when no record exists for the
	// given type and identifier.
	ErrRecordNotFound = errors.New("platform: record not found")
	// ErrUnknownField may be returned by implementations that validate
	// field ids instead of synthesizing metadata for unknown ones.
	ErrUnknownField = errors.New("platform: unknown field")
)
