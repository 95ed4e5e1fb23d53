package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptData is wrapped by every error caused by unreadable stored data.
	ErrCorruptData = errors.New("corrupt task data")
	// ErrUnknownDriver is returned by Open for an unsupported storage driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// PersistenceError describes a failed storage operation.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func corrupt(op, path string, err error) error {
	return &PersistenceError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrCorruptData, err)}
}
