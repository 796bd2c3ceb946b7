package ports

import (
	"context"
	"io"
)

// ObjectStore abstracts the object-storage backend (MinIO in production).
type ObjectStore interface {
	// EnsureBucket creates the configured bucket if it does not exist.
	// Idempotent: losing a creation race to another instance is not an error.
	EnsureBucket(ctx context.Context) error

	// Put uploads size bytes from r under objectName with the given content
	// type as object metadata.
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error

	// PublicURL returns the browser-resolvable URL for a stored object. It is
	// built from the public-facing endpoint, which may differ from the
	// endpoint used for Put when storage sits on an internal network.
	PublicURL(objectName string) string
}
