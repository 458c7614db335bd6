package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"chitchat-client/models"
)

// Persisted storage keys, kept as file names under the data directory.
const (
	tokenFileName = "access_token"
	userFileName  = "user"
)

// Store holds the authenticated identity and bearer token for the duration
// of a login. It is mutated only by Login and Logout.
type Store struct {
	mu              sync.RWMutex
	dataDir         string
	isAuthenticated bool
	user            *models.UserInfo
	token           string
}

// NewStore restores persisted state from dataDir. A stored token yields an
// authenticated store; the user is whatever was persisted alongside it, which
// may be nil if the user file is missing or unreadable.
func NewStore(dataDir string) *Store {
	s := &Store{dataDir: dataDir}

	raw, err := os.ReadFile(filepath.Join(dataDir, tokenFileName))
	if err != nil {
		return s
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return s
	}

	s.token = token
	s.isAuthenticated = true

	if raw, err := os.ReadFile(filepath.Join(dataDir, userFileName)); err == nil {
		var user models.UserInfo
		if err := json.Unmarshal(raw, &user); err == nil {
			s.user = &user
		}
	}

	return s
}

// Login sets the authenticated state and persists both values.
func (s *Store) Login(user *models.UserInfo, token string) error {
	s.mu.Lock()
	s.isAuthenticated = true
	s.user = user
	s.token = token
	s.mu.Unlock()

	if err := os.MkdirAll(s.dataDir, 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, tokenFileName), []byte(token), 0o600); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, userFileName), raw, 0o600); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Logout clears the state and removes the persisted values.
func (s *Store) Logout() {
	s.mu.Lock()
	s.isAuthenticated = false
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	os.Remove(filepath.Join(s.dataDir, tokenFileName))
	os.Remove(filepath.Join(s.dataDir, userFileName))
}

// IsAuthenticated reports whether a session is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAuthenticated
}

// Token returns the bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated identity, nil until login populates it.
func (s *Store) User() *models.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}
