package errors

import (
	"fmt"
)

// MalformedSpecError occurs when a required field is missing from serialized source configuration
type MalformedSpecError struct{ Field string }

// Error returns a textual representation of this MalformedSpecError
func (e MalformedSpecError) Error() string {
	return fmt.Sprintf("Required field %s is missing from source configuration", e.Field)
}

// TypeMismatchError occurs when a configuration field is present with the wrong shape
type TypeMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

// Error returns a textual representation of this TypeMismatchError
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("Field %s should be %s but is %s", e.Field, e.Expected, e.Actual)
}

// UnknownSourceTypeError occurs when no ReaderFactory is registered for a source-type tag
type UnknownSourceTypeError struct{ Type string }

// Error returns a textual representation of this UnknownSourceTypeError
func (e UnknownSourceTypeError) Error() string {
	return fmt.Sprintf("No reader factory is registered for source type %s", e.Type)
}

// DuplicateFactoryError occurs when a source-type tag is registered twice
type DuplicateFactoryError struct{ Type string }

// Error returns a textual representation of this DuplicateFactoryError
func (e DuplicateFactoryError) Error() string {
	return fmt.Sprintf("A reader factory is already registered for source type %s", e.Type)
}

// RegistryFrozenError occurs when a factory is registered after the registry's
// initialization phase has ended
type RegistryFrozenError struct{ Type string }

// Error returns a textual representation of this RegistryFrozenError
func (e RegistryFrozenError) Error() string {
	return fmt.Sprintf("Unable to register source type %s: the registry is frozen", e.Type)
}

// SubReaderConstructionError occurs when a registered factory fails to construct the
// reader for one sub-source of a concatenation
type SubReaderConstructionError struct {
	Index int
	Type  string
	Cause error
}

// Error returns a textual representation of this SubReaderConstructionError
func (e SubReaderConstructionError) Error() string {
	return fmt.Sprintf("Unable to construct reader for sub-source %d (type %s): %v", e.Index, e.Type, e.Cause)
}

// Unwrap returns the underlying cause of this SubReaderConstructionError
func (e SubReaderConstructionError) Unwrap() error {
	return e.Cause
}

// SubReaderIOError occurs when an opened sub-reader fails during iteration
type SubReaderIOError struct {
	Index int
	Cause error
}

// Error returns a textual representation of this SubReaderIOError
func (e SubReaderIOError) Error() string {
	return fmt.Sprintf("Reading sub-source %d failed: %v", e.Index, e.Cause)
}

// Unwrap returns the underlying cause of this SubReaderIOError
func (e SubReaderIOError) Unwrap() error {
	return e.Cause
}

// NoMoreRecordsError occurs when NextRecord is called on an exhausted Reader
type NoMoreRecordsError struct{}

// Error returns a textual representation of this NoMoreRecordsError
func (e NoMoreRecordsError) Error() string {
	return "No more records"
}

// UnsplittableReaderError occurs when a split request cannot be honored by a Reader
type UnsplittableReaderError struct{ Reason string }

// Error returns a textual representation of this UnsplittableReaderError
func (e UnsplittableReaderError) Error() string {
	return fmt.Sprintf("Unable to split reader: %s", e.Reason)
}

// UnrestorableReaderError occurs when a position restore targets a sub-reader which does
// not support restoration
type UnrestorableReaderError struct{ Type string }

// Error returns a textual representation of this UnrestorableReaderError
func (e UnrestorableReaderError) Error() string {
	return fmt.Sprintf("Reader for source type %s does not support position restoration", e.Type)
}

// PositionMismatchError occurs when a restored position token does not match the source
// list it is applied to
type PositionMismatchError struct{}

// Error returns a textual representation of this PositionMismatchError
func (e PositionMismatchError) Error() string {
	return "Position token does not match this reader's source list"
}
