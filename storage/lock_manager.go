package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// OperationType defines whether an operation is read or write.
type OperationType int

const (
	// ReadOperation only reads the data file and takes a shared file lock.
	ReadOperation OperationType = iota

	// WriteOperation rewrites the data file and takes an exclusive file lock.
	WriteOperation
)

const (
	defaultLockTimeout   = 3 * time.Second
	defaultRetryInterval = 100 * time.Millisecond
)

// LockManager serializes repository operations when locking is enabled with
// WithFileLock. Operations within one process are serialized by a mutex;
// across processes an advisory flock on a sidecar file is held for the whole
// read-modify-write cycle.
//
// A nil *LockManager runs operations with no locking at all, which is the
// repository default.
type LockManager struct {
	mu            sync.Mutex
	fileLock      *flock.Flock
	timeout       time.Duration
	retryInterval time.Duration
}

// NewLockManager creates a lock manager using lockPath as the flock file
func NewLockManager(lockPath string) *LockManager {
	return &LockManager{
		fileLock:      flock.New(lockPath),
		timeout:       defaultLockTimeout,
		retryInterval: defaultRetryInterval,
	}
}

// Execute runs fn while holding the locks appropriate for opType
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	if lm == nil {
		return fn()
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lm.timeout)
	defer cancel()

	var locked bool
	var err error
	switch opType {
	case ReadOperation:
		locked, err = lm.fileLock.TryRLockContext(ctx, lm.retryInterval)
	default:
		locked, err = lm.fileLock.TryLockContext(ctx, lm.retryInterval)
	}
	if err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", lm.fileLock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("could not acquire file lock %s", lm.fileLock.Path())
	}
	defer func() { _ = lm.fileLock.Unlock() }()

	return fn()
}

// Close releases the lock file handle
func (lm *LockManager) Close() error {
	if lm == nil {
		return nil
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return lm.fileLock.Close()
}
