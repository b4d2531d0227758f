package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File stores each key as <dir>/<key>.json.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile creates a file backend rooted at dir, creating it if missing.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}
	return &File{dir: dir}, nil
}

// Path returns the file a key is stored in.
func (f *File) Path(key string) string {
	name := strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, name+".json")
}

// Get reads the file for key, or returns ErrNotFound.
func (f *File) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: reading %q: %w", key, err)
	}
	return data, nil
}

// Put writes data to a temp file and renames it over the key's file, so a
// crash mid-write never leaves a truncated blob behind.
func (f *File) Put(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.Path(key)
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: writing %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: replacing %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; File holds no open handles.
func (f *File) Close() error { return nil }
