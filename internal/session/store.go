// Package session persists the login session and drives its expiry timers.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/xolan/otdash/internal/osutil"
)

const (
	// SessionFile is the name of the JSON session store file
	SessionFile = "session.json"

	KeyToken          = "token"
	KeySessionExpires = "sessionExpires"
	KeyUsername       = "username"
)

// Store is a string key-value surface shared by every otdash process.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
}

// IsSessionKey reports whether key affects the session timers.
func IsSessionKey(key string) bool {
	return key == KeyToken || key == KeySessionExpires
}

// GetSessionPath returns the path to the session store file.
// Creates the config directory if it doesn't exist.
func GetSessionPath() (string, error) {
	return osutil.AppFile(SessionFile)
}

// FileStore keeps the session as a flat JSON object in a single file.
// Writes go through a temp file and a rename so readers in other
// processes never observe a partial file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value for key, or "" if it is not set.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// All returns a copy of every stored key.
func (s *FileStore) All() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Set stores value under key.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Remove deletes key. Removing a missing key is not an error.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

// Clear removes the store file.
// Returns nil if the file doesn't exist (idempotent operation).
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// load reads the store file. A missing or empty file is an empty store.
func (s *FileStore) load() (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	// map[string]string always marshals
	data, _ := json.MarshalIndent(values, "", "  ")

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmpFile, s.path)
}
