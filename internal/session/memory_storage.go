package session

import (
	"context"
	"sync"
)

// MemoryStorage keeps credentials in process memory. Used in development
// when Redis is disabled; a restart requires a fresh login.
type MemoryStorage struct {
	mu    sync.Mutex
	creds Credentials
	set   bool
}

// NewMemoryStorage creates an empty in-memory credential storage.
func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (s *MemoryStorage) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.set = true
	return nil
}

func (s *MemoryStorage) Load(_ context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.creds.Token == "" {
		return Credentials{}, ErrNoCredentials
	}
	return s.creds, nil
}

func (s *MemoryStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	s.set = false
	return nil
}
