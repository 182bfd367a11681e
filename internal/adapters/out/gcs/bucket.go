// Package gcs implements blob storage on Google Cloud Storage. Evidence
// photos and signature images are written as objects and referenced from the
// order by their public URL.
package gcs

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"fieldservice/internal/core/ports"
)

// uploadTimeout bounds a single object write, mobile uplinks included.
const uploadTimeout = 2 * time.Minute

// Config holds the settings for the bucket storage adapter.
// EmulatorHost switches the client to a local fake-gcs-server instance; it
// is empty in production.
type Config struct {
	Bucket        string
	PublicBaseURL string
	EmulatorHost  string
}

// BucketStorage implements ports.BlobStorage backed by one GCS bucket.
type BucketStorage struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

// NewBucketStorage creates a storage client for the configured bucket.
// With an emulator host set, the client talks to the emulator without
// authentication.
func NewBucketStorage(ctx context.Context, cfg Config) (*BucketStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var opts []option.ClientOption
	if cfg.EmulatorHost != "" {
		endpoint := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
		_ = os.Setenv("STORAGE_EMULATOR_HOST", endpoint)
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &BucketStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the payload to the bucket under the given path and returns
// the object's public URL. Failures come back as *ports.UploadError.
func (s *BucketStorage) Upload(ctx context.Context, path string, contentType string,
	data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", ports.NewUploadError(path, err)
	}
	if err := w.Close(); err != nil {
		return "", ports.NewUploadError(path, err)
	}

	return s.publicURL(path), nil
}

// Close releases the underlying storage client.
func (s *BucketStorage) Close() error {
	return s.client.Close()
}

func (s *BucketStorage) publicURL(path string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, path)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path)
}
