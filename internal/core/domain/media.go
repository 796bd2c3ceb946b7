package domain

import "errors"

// MaxImageSize is the upper bound for a single uploaded image.
const MaxImageSize = 5 * 1024 * 1024 // 5 MiB

var ErrNoFiles = errors.New("no files provided")
var ErrInvalidFileType = errors.New("invalid file type")
var ErrFileTooLarge = errors.New("file too large")
var ErrUploadFailed = errors.New("failed to upload file")

// allowedImageTypes is the declared-mime allow-list for ingested assets.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// IsAllowedImageType reports whether the declared mime type may be ingested.
func IsAllowedImageType(mimeType string) bool {
	_, ok := allowedImageTypes[mimeType]
	return ok
}
