package storage

import "log/slog"

// Option is a function that modifies FileRepository configuration
type Option func(*FileRepository)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) Option {
	return func(r *FileRepository) {
		r.fs = fs
	}
}

// WithLogger sets the logger used for load and write diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(r *FileRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFileLock enables locking around every operation. lockPath names the
// flock file; when empty it defaults to the data file path plus ".lock".
// Repositories are unlocked unless this option is given.
func WithFileLock(lockPath string) Option {
	return func(r *FileRepository) {
		r.lockPath = lockPath
		r.locking = true
	}
}
