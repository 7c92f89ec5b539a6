package storage

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/arthur-debert/encounters/testutil"
	"github.com/arthur-debert/encounters/types"
)

func TestNilLockManagerRunsDirectly(t *testing.T) {
	var lm *LockManager

	called := false
	err := lm.Execute(WriteOperation, func() error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !called {
		t.Error("expected fn to be called")
	}
	if err := lm.Close(); err != nil {
		t.Errorf("Close on nil manager failed: %v", err)
	}
}

func TestLockManagerPropagatesError(t *testing.T) {
	lm := NewLockManager(filepath.Join(t.TempDir(), "test.lock"))
	defer func() { _ = lm.Close() }()

	want := errors.New("boom")
	for _, op := range []OperationType{ReadOperation, WriteOperation} {
		if err := lm.Execute(op, func() error { return want }); !errors.Is(err, want) {
			t.Errorf("Execute(%d) = %v, want %v", op, err, want)
		}
	}
}

func TestLockedRepositoriesSerializeWrites(t *testing.T) {
	path := testutil.MissingFilePath(t)

	first := NewFileRepository(path, WithFileLock(""))
	second := NewFileRepository(path, WithFileLock(""))
	defer func() { _ = first.Close() }()
	defer func() { _ = second.Close() }()

	const perRepo = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*perRepo)
	for _, repo := range []*FileRepository{first, second} {
		wg.Add(1)
		go func(repo *FileRepository) {
			defer wg.Done()
			for i := 0; i < perRepo; i++ {
				if _, err := repo.Add(types.Encounter{Type: types.UFO, When: "now", Description: "concurrent", Occurrences: 1}); err != nil {
					errs <- err
				}
			}
		}(repo)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("Add failed: %v", err)
	}

	all, err := first.FindAll()
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 2*perRepo {
		t.Fatalf("expected %d records, got %d", 2*perRepo, len(all))
	}

	ids := make([]int, len(all))
	for i, e := range all {
		ids[i] = e.ID
	}
	sort.Ints(ids)
	for i, id := range ids {
		if id != i+1 {
			t.Fatalf("expected ids 1..%d without gaps or duplicates, got %v", 2*perRepo, ids)
		}
	}
}

func TestWithFileLockDefaultPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "encounters.csv")
	repo := NewFileRepository(path, WithFileLock(""))
	defer func() { _ = repo.Close() }()

	if repo.lockPath != path+".lock" {
		t.Errorf("lockPath = %q, want %q", repo.lockPath, path+".lock")
	}

	custom := NewFileRepository(path, WithFileLock(filepath.Join(t.TempDir(), "custom.lock")))
	defer func() { _ = custom.Close() }()
	if filepath.Base(custom.lockPath) != "custom.lock" {
		t.Errorf("lockPath = %q, want custom.lock", custom.lockPath)
	}

	unlocked := NewFileRepository(path)
	if unlocked.locks != nil {
		t.Error("expected no lock manager by default")
	}
}
