package storage

import (
	"errors"
	"fmt"
)

// DataAccessError reports an I/O failure against the backing file.
// A missing file on read is not a DataAccessError; it reads as an empty store.
type DataAccessError struct {
	Op   string // "read" or "write"
	Path string // Backing file path
	Err  error  // Underlying cause
}

// Error implements the error interface
func (e *DataAccessError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to %s %s", e.Op, e.Path)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As
func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// IsDataAccess reports whether err is, or wraps, a DataAccessError
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

func readError(path string, err error) error {
	return &DataAccessError{Op: "read", Path: path, Err: err}
}

func writeError(path string, err error) error {
	return &DataAccessError{Op: "write", Path: path, Err: err}
}
