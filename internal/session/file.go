package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const sessionFile = "session.json"

// FileSlot keeps the record in <dir>/session.json so a CLI session survives
// between runs.
type FileSlot struct {
	dir string
	mu  sync.Mutex
}

func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{dir: dir}
}

func (s *FileSlot) path() string {
	return filepath.Join(s.dir, sessionFile)
}

func (s *FileSlot) Load(_ context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, ErrCorrupt
	}
	return &rec, nil
}

// Save writes through a temp file and rename so a crash never leaves half a record.
func (s *FileSlot) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (s *FileSlot) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
