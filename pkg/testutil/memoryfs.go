// Package testutil provides test doubles shared by package tests.
package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. It is safe for
// concurrent use and supports per-path error injection.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// Error injection: operations on these paths fail with the mapped error.
	errorPaths map[string]error
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:      make(map[string][]byte),
		dirs:       map[string]bool{"/": true},
		errorPaths: make(map[string]error),
	}
}

// InjectError makes every operation on path fail with err.
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[m.clean(path)] = err
}

func (m *MemoryFS) clean(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

func (m *MemoryFS) injected(path string) error {
	if err, ok := m.errorPaths[path]; ok {
		return err
	}
	return nil
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = m.clean(name)
	if err := m.injected(name); err != nil {
		return nil, err
	}
	if data, ok := m.files[name]; ok {
		return &fileInfo{name: filepath.Base(name), size: int64(len(data)), mode: 0644}, nil
	}
	if m.dirs[name] {
		return &fileInfo{name: filepath.Base(name), mode: 0755 | fs.ModeDir, dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = m.clean(name)
	if err := m.injected(name); err != nil {
		return nil, err
	}
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = m.clean(name)
	if err := m.injected(name); err != nil {
		return err
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[name] = stored

	// Parent directories are created implicitly.
	for dir := filepath.Dir(name); dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.clean(path)
	if err := m.injected(path); err != nil {
		return err
	}
	for dir := path; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
	return nil
}

// fileInfo is a minimal fs.FileInfo for in-memory entries
type fileInfo struct {
	name string
	size int64
	mode fs.FileMode
	dir  bool
}

func (f *fileInfo) Name() string       { return f.name }
func (f *fileInfo) Size() int64        { return f.size }
func (f *fileInfo) Mode() fs.FileMode  { return f.mode }
func (f *fileInfo) ModTime() time.Time { return time.Time{} }
func (f *fileInfo) IsDir() bool        { return f.dir }
func (f *fileInfo) Sys() interface{}   { return nil }
