package storage

import (
	"bytes"
	"io"
	"io/fs"
	"sync"
)

// MockFileSystem provides an in-memory implementation of FileSystem for testing.
// Create truncates immediately, like os.Create, so a failed write leaves a
// truncated file behind.
type MockFileSystem struct {
	mu    sync.Mutex
	files map[string][]byte

	// Optional errors for simulating failures
	OpenError   error
	CreateError error
	WriteError  error
	CloseError  error

	// Tracking
	OpenCalls   int
	CreateCalls int
	openHandles int
}

// NewMockFileSystem creates a new mock file system
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
	}
}

// Open implements FileSystem.Open
func (m *MockFileSystem) Open(name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.OpenCalls++
	if m.OpenError != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: m.OpenError}
	}

	content, exists := m.files[name]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	m.openHandles++
	return &mockReader{
		Reader: bytes.NewReader(append([]byte(nil), content...)),
		fs:     m,
	}, nil
}

// Create implements FileSystem.Create
func (m *MockFileSystem) Create(name string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateError != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: m.CreateError}
	}

	m.files[name] = []byte{}
	m.openHandles++
	return &mockWriter{name: name, fs: m}, nil
}

// SetFile stores content under name
func (m *MockFileSystem) SetFile(name string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), content...)
}

// FileContent returns the content stored under name
func (m *MockFileSystem) FileContent(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), content...), true
}

// FileExists reports whether name has been created
func (m *MockFileSystem) FileExists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

// OpenHandles returns the number of handles not yet closed
func (m *MockFileSystem) OpenHandles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openHandles
}

type mockReader struct {
	*bytes.Reader
	fs     *MockFileSystem
	closed bool
}

func (r *mockReader) Close() error {
	r.fs.mu.Lock()
	defer r.fs.mu.Unlock()
	if !r.closed {
		r.closed = true
		r.fs.openHandles--
	}
	return r.fs.CloseError
}

type mockWriter struct {
	name   string
	fs     *MockFileSystem
	closed bool
}

func (w *mockWriter) Write(p []byte) (int, error) {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	if w.fs.WriteError != nil {
		return 0, w.fs.WriteError
	}
	w.fs.files[w.name] = append(w.fs.files[w.name], p...)
	return len(p), nil
}

func (w *mockWriter) Close() error {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	if !w.closed {
		w.closed = true
		w.fs.openHandles--
	}
	return w.fs.CloseError
}
