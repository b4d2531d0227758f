// Package storage provides the key-value blob backends the history store
// persists through.
//
// A backend only ever sees opaque bytes under a string key: the history
// store serializes its whole collection and writes it back after every
// mutation. Three implementations exist:
// - SQLite: a single kv table in a modernc.org/sqlite database (default)
// - File: one <key>.json file per key in a directory
// - Memory: a map, for tests and throwaway sessions
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a minimal blob store. Implementations must be safe for
// concurrent use.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindFile   = "file"
	KindMemory = "memory"
)

// Open creates the backend named by kind rooted at dataDir.
func Open(kind, dataDir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindSQLite, "":
		return NewSQLite(dataDir)
	case KindFile:
		return NewFile(dataDir)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q: must be one of: sqlite, file, memory", kind)
	}
}

// ValidKind reports whether Open understands kind.
func ValidKind(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindSQLite, KindFile, KindMemory:
		return true
	}
	return false
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("storage: empty key")
	}
	return nil
}
