package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	certapp "github.com/institute/backend/internal/application/certification"
)

var _ certapp.DocumentStore = (*MemoryDocumentStore)(nil)

// StoredObject is a document held by MemoryDocumentStore
type StoredObject struct {
	Body        []byte
	ContentType string
}

// MemoryDocumentStore keeps documents in process memory. It backs local
// development without object storage and the integration tests.
type MemoryDocumentStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]StoredObject
	now     func() time.Time
}

// NewMemoryDocumentStore creates an empty store whose URLs start with baseURL
func NewMemoryDocumentStore(baseURL string) *MemoryDocumentStore {
	if baseURL == "" {
		baseURL = "memory://certificates"
	}
	return &MemoryDocumentStore{
		baseURL: baseURL,
		objects: make(map[string]StoredObject),
		now:     time.Now,
	}
}

func (s *MemoryDocumentStore) Put(_ context.Context, key string, body []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	s.mu.Lock()
	s.objects[key] = StoredObject{Body: append([]byte(nil), body...), ContentType: contentType}
	s.mu.Unlock()
	return s.baseURL + "/" + key, nil
}

// PresignGet returns a pseudo-signed URL carrying the expiry. Unknown keys fail.
func (s *MemoryDocumentStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("object %s not found", key)
	}
	return fmt.Sprintf("%s/%s?expires=%d", s.baseURL, key, s.now().Add(ttl).Unix()), nil
}

// Get returns a stored object
func (s *MemoryDocumentStore) Get(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}
