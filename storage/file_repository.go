package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/arthur-debert/encounters/types"
)

// ErrInvalidType is returned by Add and Update for a type outside the
// enumeration. Such a record could be written but never read back.
var ErrInvalidType = errors.New("invalid encounter type")

// FileRepository implements EncounterRepository over a single text file.
// It performs no locking unless built with WithFileLock, so concurrent
// mutations from several goroutines or processes can overwrite each other.
type FileRepository struct {
	filePath string
	fs       FileSystem
	logger   *slog.Logger

	locking  bool
	lockPath string
	locks    *LockManager
}

// NewFileRepository creates a repository backed by filePath.
// The file is not touched until the first operation.
func NewFileRepository(filePath string, opts ...Option) *FileRepository {
	r := &FileRepository{
		filePath: filePath,
		fs:       OSFileSystem{},
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.locking {
		if r.lockPath == "" {
			r.lockPath = filePath + ".lock"
		}
		r.locks = NewLockManager(r.lockPath)
	}
	r.logger = r.logger.With("file", filePath)

	return r
}

// Path returns the backing file path
func (r *FileRepository) Path() string {
	return r.filePath
}

// Close releases the lock file handle, if locking is enabled
func (r *FileRepository) Close() error {
	return r.locks.Close()
}

// FindAll implements EncounterRepository.FindAll
func (r *FileRepository) FindAll() ([]types.Encounter, error) {
	var result []types.Encounter
	err := r.locks.Execute(ReadOperation, func() error {
		var err error
		result, err = r.load()
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindByType implements EncounterRepository.FindByType
func (r *FileRepository) FindByType(encounterType types.EncounterType) ([]types.Encounter, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}

	result := make([]types.Encounter, 0, len(all))
	for _, e := range all {
		if e.Type == encounterType {
			result = append(result, e)
		}
	}
	return result, nil
}

// FindByID implements EncounterRepository.FindByID
func (r *FileRepository) FindByID(id int) (types.Encounter, bool, error) {
	all, err := r.FindAll()
	if err != nil {
		return types.Encounter{}, false, err
	}

	for _, e := range all {
		if e.ID == id {
			return e, true, nil
		}
	}
	return types.Encounter{}, false, nil
}

// Add implements EncounterRepository.Add.
// Any id already set on e is overwritten. A type outside the enumeration
// returns ErrInvalidType without touching the file.
func (r *FileRepository) Add(e types.Encounter) (types.Encounter, error) {
	if !e.Type.Valid() {
		return types.Encounter{}, fmt.Errorf("%w: %v", ErrInvalidType, e.Type)
	}

	var stored types.Encounter
	err := r.locks.Execute(WriteOperation, func() error {
		all, err := r.load()
		if err != nil {
			return err
		}

		e.ID = nextID(all)
		all = append(all, e)
		if err := r.writeAll(all); err != nil {
			return err
		}

		stored = e
		r.logger.Debug("encounter added", "id", e.ID, "type", e.Type.String())
		return nil
	})
	if err != nil {
		return types.Encounter{}, err
	}
	return stored, nil
}

// Update implements EncounterRepository.Update.
// A type outside the enumeration returns ErrInvalidType without touching the file.
func (r *FileRepository) Update(e types.Encounter) (bool, error) {
	if !e.Type.Valid() {
		return false, fmt.Errorf("%w: %v", ErrInvalidType, e.Type)
	}

	updated := false
	err := r.locks.Execute(WriteOperation, func() error {
		all, err := r.load()
		if err != nil {
			return err
		}

		for i := range all {
			if all[i].ID == e.ID {
				all[i] = e
				if err := r.writeAll(all); err != nil {
					return err
				}
				updated = true
				r.logger.Debug("encounter updated", "id", e.ID)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// DeleteByID implements EncounterRepository.DeleteByID
func (r *FileRepository) DeleteByID(id int) (bool, error) {
	deleted := false
	err := r.locks.Execute(WriteOperation, func() error {
		all, err := r.load()
		if err != nil {
			return err
		}

		for i := range all {
			if all[i].ID == id {
				all = append(all[:i], all[i+1:]...)
				if err := r.writeAll(all); err != nil {
					return err
				}
				deleted = true
				r.logger.Debug("encounter deleted", "id", id)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// nextID returns one more than the largest id in encounters, or 1 when empty
func nextID(encounters []types.Encounter) int {
	maxID := 0
	for _, e := range encounters {
		maxID = max(maxID, e.ID)
	}
	return maxID + 1
}

// load reads and parses the whole data file. The first line is always
// treated as the header and skipped.
func (r *FileRepository) load() ([]types.Encounter, error) {
	f, err := r.fs.Open(r.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("data file does not exist, treating as empty")
			return []types.Encounter{}, nil
		}
		return nil, readError(r.filePath, err)
	}
	defer func() { _ = f.Close() }()

	result := []types.Encounter{}
	reader := bufio.NewReader(f)

	// Lines have no length limit
	lineNumber := 0
	skipped := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, readError(r.filePath, readErr)
		}

		if raw != "" {
			lineNumber++
			line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
			if lineNumber > 1 {
				if e, ok := ParseLine(line); ok {
					result = append(result, e)
				} else {
					skipped++
					r.logger.Debug("skipping malformed line", "line", lineNumber)
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
	}

	r.logger.Debug("encounters loaded", "count", len(result), "skipped", skipped)
	return result, nil
}

// writeAll truncates the data file and writes the header and every encounter.
// The write is not atomic: a failure part way leaves a truncated file.
func (r *FileRepository) writeAll(encounters []types.Encounter) (err error) {
	f, err := r.fs.Create(r.filePath)
	if err != nil {
		return writeError(r.filePath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = writeError(r.filePath, closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(Header + "\n"); err != nil {
		return writeError(r.filePath, err)
	}
	for _, e := range encounters {
		if _, err := w.WriteString(FormatLine(e) + "\n"); err != nil {
			return writeError(r.filePath, err)
		}
	}
	if err := w.Flush(); err != nil {
		return writeError(r.filePath, err)
	}

	r.logger.Debug("data file written", "count", len(encounters))
	return nil
}
