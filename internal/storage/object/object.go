// Package object provides blob storage for file attachments behind a small
// interface: an S3-compatible implementation for real deployments and an
// in-memory one for development and tests.
package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no blob exists under the requested key.
var ErrNotFound = errors.New("object not found")

// Info describes a stored blob.
type Info struct {
	Key         string
	Size        int64
	ContentType string
}

// Store is the blob storage contract used by the file handlers.
type Store interface {
	// Put uploads size bytes from r under key with the given content type.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get opens the blob for reading along with its metadata.
	Get(ctx context.Context, key string) (io.ReadCloser, Info, error)
	// Stat returns blob metadata without opening the body.
	Stat(ctx context.Context, key string) (Info, error)
	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
