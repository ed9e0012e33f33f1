package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// FilesystemStore implements Store on the local filesystem. Writes stream to
// a temp file and move into place atomically.
type FilesystemStore struct {
	root string
}

// NewFilesystem returns a filesystem-backed store rooted at path, creating
// the root if needed
func NewFilesystem(root string) (*FilesystemStore, error) {
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FilesystemStore{root: root}, nil
}

// Driver reports the backend kind
func (s *FilesystemStore) Driver() Driver { return DriverFilesystem }

func (s *FilesystemStore) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, k), nil
}

// Put streams the object under key, overwriting any previous object
func (s *FilesystemStore) Put(ctx context.Context, key, contentType string, r io.Reader) (Info, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return Info{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return Info{}, err
	}
	if err := tmp.Close(); err != nil {
		return Info{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return Info{}, err
	}

	return Info{Key: key, Size: size, ContentType: contentType}, nil
}

// Get opens the object for reading
func (s *FilesystemStore) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return Info{}, nil, err
	}
	f, err := os.Open(dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, nil, ErrNotFound
		}
		return Info{}, nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return Info{}, nil, err
	}
	return Info{Key: key, Size: stat.Size()}, f, nil
}

// Delete removes the object; deleting a missing key is not an error
func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dataPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
