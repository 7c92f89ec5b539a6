package storage

import (
	"io"
	"os"
)

// FileSystem defines the file operations the repository needs.
// Handles returned by Open and Create are closed by the caller before the
// operation returns.
type FileSystem interface {
	// Open opens the named file for reading
	Open(name string) (io.ReadCloser, error)

	// Create truncates or creates the named file for writing
	Create(name string) (io.WriteCloser, error)
}

// OSFileSystem is the default implementation using the os package
type OSFileSystem struct{}

// Open implements FileSystem.Open
func (OSFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Create implements FileSystem.Create
func (OSFileSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(name)
}
