package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText is returned by Add when the task text is empty.
	ErrEmptyText = errors.New("empty task text")

	// ErrOutOfRange is wrapped by IndexError.
	ErrOutOfRange = errors.New("position out of range")

	// ErrDuplicateID is returned when the id generator yields an id
	// that is already in the list.
	ErrDuplicateID = errors.New("duplicate task id")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // Field or JSON path of the offending value
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IndexError reports a position outside the current list.
type IndexError struct {
	Position int
	Len      int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("position %d out of range [0, %d)", e.Position, e.Len)
}

// Unwrap returns ErrOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}
