package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/user624-47/farmflow-sub000/internal/blob"
	"github.com/user624-47/farmflow-sub000/internal/domain"
)

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	org := testOrg()

	t.Run("success", func(t *testing.T) {
		store := blob.NewMemory()
		svc := NewUploadService(store, "https://cdn.example.com/", 1024)

		body := bytes.Repeat([]byte("x"), 100)
		resp, err := svc.UploadImage(ctx, org, "image/jpeg", int64(len(body)), bytes.NewReader(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(resp.Key, org.OrgID+"/") {
			t.Errorf("key must be namespaced by organization, got %q", resp.Key)
		}
		if !strings.HasSuffix(resp.Key, ".jpg") {
			t.Errorf("expected .jpg extension, got %q", resp.Key)
		}
		if resp.SizeBytes != 100 {
			t.Errorf("expected size 100, got %d", resp.SizeBytes)
		}
		if !strings.HasPrefix(resp.URL, "https://cdn.example.com/"+resp.Key+"?v=") {
			t.Errorf("unexpected url %q", resp.URL)
		}

		if _, _, err := store.Get(ctx, resp.Key); err != nil {
			t.Errorf("expected the object to be stored: %v", err)
		}
	})

	t.Run("content type parameters are stripped", func(t *testing.T) {
		store := blob.NewMemory()
		svc := NewUploadService(store, "https://cdn.example.com", 1024)

		resp, err := svc.UploadImage(ctx, org, "IMAGE/PNG; charset=binary", 3, strings.NewReader("abc"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(resp.Key, ".png") {
			t.Errorf("expected .png extension, got %q", resp.Key)
		}
	})

	t.Run("unsupported media type", func(t *testing.T) {
		svc := NewUploadService(blob.NewMemory(), "https://cdn.example.com", 1024)

		_, err := svc.UploadImage(ctx, org, "application/pdf", 3, strings.NewReader("abc"))
		if !errors.Is(err, ErrUnsupportedMediaType) {
			t.Errorf("expected ErrUnsupportedMediaType, got %v", err)
		}
	})

	t.Run("declared size over limit", func(t *testing.T) {
		svc := NewUploadService(blob.NewMemory(), "https://cdn.example.com", 1024)

		_, err := svc.UploadImage(ctx, org, "image/jpeg", 2048, strings.NewReader("abc"))
		if !errors.Is(err, ErrUploadTooLarge) {
			t.Errorf("expected ErrUploadTooLarge, got %v", err)
		}
	})

	t.Run("understated size is caught after writing", func(t *testing.T) {
		store := blob.NewMemory()
		svc := NewUploadService(store, "https://cdn.example.com", 16)

		body := bytes.Repeat([]byte("x"), 64)
		_, err := svc.UploadImage(ctx, org, "image/jpeg", 8, bytes.NewReader(body))
		if !errors.Is(err, ErrUploadTooLarge) {
			t.Fatalf("expected ErrUploadTooLarge, got %v", err)
		}
	})

	t.Run("missing org scope", func(t *testing.T) {
		svc := NewUploadService(blob.NewMemory(), "https://cdn.example.com", 1024)

		_, err := svc.UploadImage(ctx, domain.OrgContext{}, "image/jpeg", 3, strings.NewReader("abc"))
		if !errors.Is(err, domain.ErrMissingOrgScope) {
			t.Errorf("expected ErrMissingOrgScope, got %v", err)
		}
	})
}

func TestUploadMaxBytesDefault(t *testing.T) {
	svc := NewUploadService(blob.NewMemory(), "https://cdn.example.com", 0).(*uploadService)
	if svc.maxBytes != DefaultUploadMaxBytes {
		t.Errorf("expected default limit %d, got %d", DefaultUploadMaxBytes, svc.maxBytes)
	}
}
