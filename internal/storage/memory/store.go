// Package memory keeps uploaded blobs in an in-process map. Used by
// tests and local development where no object storage is available.
package memory

import (
	"context"
	"sync"

	"recortes/internal/storage"
)

type object struct {
	data        []byte
	contentType string
}

type Store struct {
	mu         sync.RWMutex
	objects    map[string]object
	bucket     string
	publicBase string
}

func New(bucket, publicBase string) *Store {
	return &Store{
		objects:    make(map[string]object),
		bucket:     bucket,
		publicBase: publicBase,
	}
}

func (s *Store) Upload(_ context.Context, objectName string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[objectName] = object{data: buf, contentType: contentType}
	return nil
}

func (s *Store) PublicURL(objectName string) string {
	return storage.JoinPublicURL(s.publicBase, s.bucket, objectName)
}

func (s *Store) Remove(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

func (s *Store) ExtractObjectName(publicURL string) string {
	return storage.ObjectNameFromURL(s.bucket, publicURL)
}

// Has reports whether an object exists. Test helper.
func (s *Store) Has(objectName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[objectName]
	return ok
}

// Len reports the number of stored objects. Test helper.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
