package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Slot is a single named durable location holding the serialised history.
// Load returns (nil, nil) when nothing was stored yet.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// FileSlot stores the history in one JSON file. Writes go to a temporary
// file in the same directory that is then renamed over the target, so a
// reader sees either the old or the new array, never a partial one.
type FileSlot struct {
	Path string
}

// NewFileSlot returns a slot backed by path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{Path: path}
}

func (s *FileSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", s.Path, err)
	}
	return data, nil
}

func (s *FileSlot) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create history dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod history: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace history %s: %w", s.Path, err)
	}
	return nil
}

// MemorySlot keeps the history in process memory.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

// NewMemorySlot returns a slot pre-filled with data (may be nil).
func NewMemorySlot(data []byte) *MemorySlot {
	return &MemorySlot{data: append([]byte(nil), data...)}
}

func (s *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

// Bytes returns the last saved payload.
func (s *MemorySlot) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}
