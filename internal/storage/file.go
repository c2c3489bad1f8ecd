package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aliskhannn/kanji-cards/internal/repository"
)

// ErrCorruptStateFile is returned by NewFileStateStorage when the file exists
// but is not a JSON object of saved states. The returned store is empty and usable.
var ErrCorruptStateFile = errors.New("corrupt state file")

// FileStateStorage keeps serialized app states in a single JSON file so they
// survive restarts without a database. Every write rewrites the whole file.
type FileStateStorage struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// NewFileStateStorage opens the state file at path, creating its directory.
// A missing file is an empty store.
func NewFileStateStorage(path string) (*FileStateStorage, error) {
	s := &FileStateStorage{
		path:   path,
		values: make(map[string]string),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	if len(data) == 0 {
		return s, nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return s, fmt.Errorf("%w: %s: %v", ErrCorruptStateFile, path, err)
	}
	if values != nil {
		s.values = values
	}

	return s, nil
}

func (s *FileStateStorage) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = string(value)
	return s.write()
}

func (s *FileStateStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, repository.ErrStateNotFound
	}
	return []byte(value), nil
}

// SaveMany stores all values with a single file write.
func (s *FileStateStorage) SaveMany(_ context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.values[key] = string(value)
	}
	return s.write()
}

// write replaces the file through a temporary file in the same directory.
// The caller must hold mu.
func (s *FileStateStorage) write() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal states: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
