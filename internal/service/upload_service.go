package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user624-47/farmflow-sub000/internal/blob"
	"github.com/user624-47/farmflow-sub000/internal/domain"
	"github.com/user624-47/farmflow-sub000/internal/dto"
)

// DefaultUploadMaxBytes is the image size cap when configuration leaves it unset
const DefaultUploadMaxBytes = 5 * 1024 * 1024

// extByContentType whitelists the accepted image types and pins the stored
// extension so the key never trusts a client-supplied filename
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadService stores farm and crop images in the blob store
type UploadService interface {
	UploadImage(ctx context.Context, org domain.OrgContext, contentType string, size int64, r io.Reader) (*dto.UploadImageResponse, error)
}

// uploadService implements UploadService
type uploadService struct {
	store    blob.Store
	baseURL  string
	maxBytes int64
}

// NewUploadService creates an UploadService
func NewUploadService(store blob.Store, baseURL string, maxBytes int64) UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	return &uploadService{
		store:    store,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}
}

// UploadImage validates the declared type and size, then stores the object
// under an organization-namespaced random key. The returned URL carries an
// upload timestamp so clients bypass any CDN or browser cache for the key.
func (s *uploadService) UploadImage(ctx context.Context, org domain.OrgContext, contentType string, size int64, r io.Reader) (*dto.UploadImageResponse, error) {
	if err := org.Validate(); err != nil {
		return nil, err
	}

	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	ext, ok := extByContentType[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
	if size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrUploadTooLarge, size, s.maxBytes)
	}

	// guard against an understated Content-Length
	limited := io.LimitReader(r, s.maxBytes+1)

	key := fmt.Sprintf("%s/%s%s", org.OrgID, uuid.New().String(), ext)
	info, err := s.store.Put(ctx, key, mediaType, limited)
	if err != nil {
		return nil, err
	}
	if info.Size > s.maxBytes {
		_ = s.store.Delete(ctx, key)
		return nil, fmt.Errorf("%w: body exceeded %d bytes", ErrUploadTooLarge, s.maxBytes)
	}

	url := fmt.Sprintf("%s/%s?v=%d", s.baseURL, info.Key, time.Now().Unix())
	return &dto.UploadImageResponse{
		Key:       info.Key,
		URL:       url,
		SizeBytes: info.Size,
	}, nil
}
