package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-cart-keeper/internal/logger"
)

// fileKV is the fallback [KVStore]: an in-memory map flushed to a single
// JSON file on every write. Simpler and slower than SQLite, but with no
// driver or cgo dependency, so it is available wherever the process can
// write a file.
type fileKV struct {
	path   string
	logger *logger.Logger

	mu    sync.RWMutex
	items map[string][]byte
}

type filePersistedState struct {
	Items map[string][]byte `json:"items"`
}

// NewFileKV loads (or initialises) the JSON-file store at path. A corrupt
// state file is moved aside to "<path>.corrupt" and the store starts
// empty rather than refusing to construct: the fallback must stay
// available even after a bad shutdown.
func NewFileKV(path string, log *logger.Logger) (KVStore, error) {
	s := &fileKV{
		path:   path,
		logger: log,
		items:  make(map[string][]byte),
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *fileKV) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		// keep the broken file for post-mortem, start over empty
		backup := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			return fmt.Errorf("decode local storage file: %w", err)
		}
		s.logger.Warn().
			Str("func", "fileKV.load").
			Str("path", s.path).
			Str("backup", backup).
			Msg("local storage file is corrupt, moved aside and starting empty")
		return nil
	}

	if st.Items != nil {
		s.items = st.Items
	}

	return nil
}

func (s *fileKV) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	state := filePersistedState{Items: s.items}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}

	return nil
}

func (s *fileKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return value, nil
}

func (s *fileKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	if err := s.persist(); err != nil {
		return fmt.Errorf("failed to persist kv value (key=%s): %w", key, err)
	}

	return nil
}

func (s *fileKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return nil
	}

	delete(s.items, key)
	if err := s.persist(); err != nil {
		return fmt.Errorf("failed to persist kv delete (key=%s): %w", key, err)
	}

	return nil
}

func (s *fileKV) Close() error {
	return nil
}
