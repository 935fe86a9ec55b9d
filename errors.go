// FILE: lixenwraith/typeconv/errors.go
package typeconv

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSource is returned when the row, table or collection passed in is nil.
	ErrNilSource = errors.New("nil source")
	// ErrInvalidTarget is returned when a target is not a non-nil pointer of the expected shape.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrConversion marks a value that could not be converted to the field type.
	ErrConversion = errors.New("conversion failed")
	// ErrEnumParse marks a value that does not name a member of the enum type.
	ErrEnumParse = errors.New("unknown enum member")
	// ErrUnknownColumn is returned by rows and tables for a column they do not carry.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicateKey is returned by TableToMap when the key column repeats a value.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrProfileNotFound is returned by LoadProfile when the file does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)

// FieldError reports the field whose coercion aborted an aggregate conversion.
type FieldError struct {
	Field string // Go field name
	Key   string // source column or collection key
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (key %q, value %v): %v", e.Field, e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
