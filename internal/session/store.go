package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Store reads and writes a State as YAML at a fixed path.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewStore returns a store for path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// JournalPath is the NDJSON event journal kept next to the state file.
func (s *Store) JournalPath() string {
	return filepath.Join(filepath.Dir(s.path), "journal.jsonl")
}

// Load reads the state. A missing file yields a fresh state.
func (s *Store) Load() (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", s.path, err)
	}
	return &st, nil
}

// Save stamps UpdatedAt and writes the state atomically.
func (s *Store) Save(st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.UpdatedAt = s.now().UTC()
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Reset removes the state file so the next Load starts over.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
