package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
)

// FileStore keeps one <key>.json file per collection in a directory.
// Writes go through a temp file and rename so a failed write leaves the old file.
type FileStore struct {
	mu       sync.Mutex
	dir      string
	maxBytes int64
}

// NewFileStore creates the directory if needed. maxBytes <= 0 means unlimited.
func NewFileStore(dir string, maxBytes int64) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: filepath.Clean(dir), maxBytes: maxBytes}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Read(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *FileStore) Write(ctx context.Context, key string, payload json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxBytes > 0 {
		used, err := s.usedBytes(key)
		if err != nil {
			return err
		}
		if used+int64(len(payload)) > s.maxBytes {
			return ErrStorageFull
		}
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return mapFileError(err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return mapFileError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return mapFileError(err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return mapFileError(err)
	}
	return nil
}

// usedBytes sums the collection files other than key
func (s *FileStore) usedBytes(key string) (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	var used int64
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || name == key+".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return 0, err
		}
		used += info.Size()
	}
	return used, nil
}

func mapFileError(err error) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return fmt.Errorf("%w: %v", ErrStorageFull, err)
	}
	return err
}
