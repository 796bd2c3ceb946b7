package ports

import (
	"context"
	"io"
)

// FileInput is one uploaded file as received by the transport layer.
// ContentType is the declared mime type, not sniffed from the bytes.
type FileInput struct {
	Reader       io.Reader
	OriginalName string
	ContentType  string
	Size         int64
}

// MediaService validates and persists uploaded images to object storage.
type MediaService interface {
	// UploadImages ingests all files or none: any validation or storage
	// failure fails the whole call. On success it returns one public URL per
	// input file, preserving input order.
	UploadImages(ctx context.Context, files []FileInput) ([]string, error)
}
