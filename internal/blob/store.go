// Package blob provides the object storage abstraction behind image uploads.
// Keys are namespaced by organization id so one tenant can never overwrite
// another tenant's objects.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Driver identifies a concrete blob storage backend implementation
type Driver string

const (
	// DriverFilesystem is the local filesystem driver (default, dev)
	DriverFilesystem Driver = "filesystem"
	// DriverMemory is the in-memory driver used in tests
	DriverMemory Driver = "memory"
)

// ErrNotFound is returned when no object exists under the key
var ErrNotFound = errors.New("blob: object not found")

// Info describes a stored object
type Info struct {
	Key         string `json:"key"`
	Size        int64  `json:"size_bytes"`
	ContentType string `json:"content_type,omitempty"`
}

// Store is the interface for object storage backends
type Store interface {
	// Put streams the object under key, overwriting any previous object
	Put(ctx context.Context, key, contentType string, r io.Reader) (Info, error)
	// Get opens the object for reading
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	// Delete removes the object; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	// Driver reports the backend kind
	Driver() Driver
}

// NewStore constructs a Store for the named driver
func NewStore(driver, root string) (Store, error) {
	switch Driver(driver) {
	case DriverFilesystem, "":
		return NewFilesystem(root)
	case DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("blob: unknown driver %q", driver)
}

// sanitizeKey forbids path traversal and absolute keys
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("blob: empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("blob: invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("blob: invalid absolute key")
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("blob: invalid key traversal")
	}
	return clean, nil
}
