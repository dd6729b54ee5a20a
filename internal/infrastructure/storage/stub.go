package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	ledgerapp "github.com/towerledger/backend/internal/application/ledger"
)

// StubMediaStorage is an in-memory implementation of MediaStorage.
// Use it for development and tests when no S3 backend is available.
type StubMediaStorage struct {
	// BaseURL is the base URL for generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubMediaStorage creates a new StubMediaStorage
func NewStubMediaStorage() *StubMediaStorage {
	return &StubMediaStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Ensure StubMediaStorage implements MediaStorage
var _ ledgerapp.MediaStorage = (*StubMediaStorage)(nil)

// Upload stores an attachment in memory
func (s *StubMediaStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes an attachment. Deleting a missing key succeeds.
func (s *StubMediaStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// DownloadURL returns a stub download URL
func (s *StubMediaStorage) DownloadURL(ctx context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(15 * time.Minute)
	return s.BaseURL + "/download/" + key, expiresAt, nil
}

// Has reports whether an attachment is stored under the key
func (s *StubMediaStorage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}

// Len returns the number of stored attachments
func (s *StubMediaStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
