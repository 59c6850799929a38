// Package rec defines the error types raised by the mapping layer.
// Errors coming back from the platform boundary are never wrapped or
// retried; they propagate to the caller unchanged.
package rec

import "fmt"

// InvalidArgumentError is returned when a constructor or a coercing write
// receives a value it cannot interpret.
type InvalidArgumentError struct {
	Value   any
	Context string // "source", "numeric field", ...
}

// Error returns the error message for InvalidArgumentError.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("rec: invalid %s argument %v (%T)", e.Context, e.Value, e.Value)
}

// ReadOnlyFieldError is returned when a write targets the reserved "id" or
// "type" pseudo-fields.
type ReadOnlyFieldError struct {
	Name string
}

// Error returns the error message for ReadOnlyFieldError.
func (e *ReadOnlyFieldError) Error() string {
	return fmt.Sprintf("rec: field %q is read-only", e.Name)
}

// NotSavableError is returned when Save is attempted on a record whose
// underlying handle does not support persistence.
type NotSavableError struct {
	RecordType string
}

// Error returns the error message for NotSavableError.
func (e *NotSavableError) Error() string {
	return fmt.Sprintf("rec: %s record is not savable (transient handle)", e.RecordType)
}

// IndexOutOfRangeError is returned when a sublist insertion index exceeds
// the current line count.
type IndexOutOfRangeError struct {
	SublistID string
	Index     int
	Length    int
}

// Error returns the error message for IndexOutOfRangeError.
func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("rec: index %d out of range for sublist %q with %d lines",
		e.Index, e.SublistID, e.Length)
}

// InvalidModeOperationError is returned when an operation requires dynamic
// mode and the effective mode is standard.
type InvalidModeOperationError struct {
	Operation string
	SublistID string
}

// Error returns the error message for InvalidModeOperationError.
func (e *InvalidModeOperationError) Error() string {
	return fmt.Sprintf("rec: %s on sublist %q requires dynamic mode", e.Operation, e.SublistID)
}

// UnknownSublistError is returned when a sublist accessor names a property
// with no sublist binding.
type UnknownSublistError struct {
	RecordType string
	Name       string
}

// Error returns the error message for UnknownSublistError.
func (e *UnknownSublistError) Error() string {
	return fmt.Sprintf("rec: %s has no sublist binding %q", e.RecordType, e.Name)
}

// NotRegisteredError is returned when an operation needs a Go type that has
// not been registered.
type NotRegisteredError struct {
	TypeName string
}

// Error returns the error message for NotRegisteredError.
func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("rec: type %q is not registered", e.TypeName)
}
