package blob

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemoryStore implements Store in memory for tests
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemory returns an in-memory store
func NewMemory() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

// Driver reports the backend kind
func (s *MemoryStore) Driver() Driver { return DriverMemory }

// Put stores the object under key, overwriting any previous object
func (s *MemoryStore) Put(ctx context.Context, key, contentType string, r io.Reader) (Info, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return Info{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}

	s.mu.Lock()
	s.objects[k] = memoryObject{data: data, contentType: contentType}
	s.mu.Unlock()

	return Info{Key: k, Size: int64(len(data)), ContentType: contentType}, nil
}

// Get opens the object for reading
func (s *MemoryStore) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return Info{}, nil, err
	}

	s.mu.RLock()
	obj, ok := s.objects[k]
	s.mu.RUnlock()
	if !ok {
		return Info{}, nil, ErrNotFound
	}

	info := Info{Key: k, Size: int64(len(obj.data)), ContentType: obj.contentType}
	return info, io.NopCloser(bytes.NewReader(obj.data)), nil
}

// Delete removes the object; deleting a missing key is not an error
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	k, err := sanitizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.objects, k)
	s.mu.Unlock()
	return nil
}
