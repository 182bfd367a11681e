package ports

import (
	"context"
	"errors"
	"fmt"
)

// ErrUploadFailed is the unwrap target for UploadError, so callers can
// classify blob-storage failures with errors.Is.
var ErrUploadFailed = errors.New("upload failed")

// BlobStorage defines the contract for persisting binary evidence artifacts
// (photos, signature images). Upload is all-or-nothing from the caller's
// perspective: a returned URL always references a fully stored object, and a
// failure never leaves a usable reference behind.
type BlobStorage interface {
	// Upload stores data under the given path and returns the public URL of
	// the stored object. On failure it returns an UploadError; the caller
	// must not persist any reference in that case.
	Upload(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// UploadError reports a failed blob-storage upload. The attempted path is
// carried for logging; the failure is always retryable from the caller's
// perspective.
type UploadError struct {
	Path  string
	Cause error
}

// NewUploadError creates an UploadError for the given storage path.
func NewUploadError(path string, cause error) *UploadError {
	return &UploadError{Path: path, Cause: cause}
}

func (e *UploadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrUploadFailed, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUploadFailed, e.Path)
}

func (e *UploadError) Unwrap() error {
	return ErrUploadFailed
}
