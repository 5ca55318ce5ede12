package render

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Blob is an in-memory file served under a temporary reference.
type Blob struct {
	ContentType string
	Data        []byte
}

// BlobStore hands out temporary references for uploaded files so pages can
// display them before they are saved.
type BlobStore struct {
	mu      sync.RWMutex
	prefix  string
	blobs   map[string]Blob
	revoked int
}

// NewBlobStore returns a store whose references are prefix followed by a
// random id.
func NewBlobStore(prefix string) *BlobStore {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BlobStore{prefix: prefix, blobs: make(map[string]Blob)}
}

// Create stores data and returns its reference.
func (s *BlobStore) Create(contentType string, data []byte) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.blobs[id] = Blob{ContentType: contentType, Data: data}
	s.mu.Unlock()
	return s.prefix + id
}

// Open looks up a blob by id or full reference.
func (s *BlobStore) Open(ref string) (Blob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[s.id(ref)]
	return b, ok
}

// Revoke invalidates a reference. It reports false when the reference was
// unknown or already revoked.
func (s *BlobStore) Revoke(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id(ref)
	if _, ok := s.blobs[id]; !ok {
		return false
	}
	delete(s.blobs, id)
	s.revoked++
	return true
}

// Live returns the number of references not yet revoked.
func (s *BlobStore) Live() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// Revoked returns how many references have been revoked so far.
func (s *BlobStore) Revoked() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revoked
}

func (s *BlobStore) id(ref string) string {
	return strings.TrimPrefix(ref, s.prefix)
}
