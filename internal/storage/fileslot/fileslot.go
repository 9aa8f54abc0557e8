// Package fileslot stores each slot as a JSON file in a data directory.
// It is the default backend and follows a browser local-storage model:
// one named value per key, rewritten in full on every save.
package fileslot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbarnes/penny/internal/storage"
)

type Store struct {
	dir string
}

// New creates the data directory if needed and returns a file-backed
// slot store rooted at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	// Keys are fixed identifiers chosen by the application, but keep
	// path traversal out regardless.
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("reading slot %q: %w", key, err)
	}

	return data, nil
}

func (s *Store) Write(_ context.Context, key string, data []byte) error {
	path := s.path(key)

	// Write to a temp file and rename so a crash mid-write never leaves
	// a half-serialized slot behind.
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("writing slot %q: %w", key, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing slot %q: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing slot %q: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting slot %q: %w", key, err)
	}

	return nil
}
