package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rentguard/rentguard-api/internal/api/metrics"
	"github.com/rentguard/rentguard-api/internal/core/domain"
	"github.com/rentguard/rentguard-api/internal/core/ports"
)

// maxUploadConcurrency bounds the fan-out of a single UploadImages call.
const maxUploadConcurrency = 4

// MediaService is the media ingestion pipeline: it validates declared mime
// type and size, stores each image under a freshly generated name, and
// returns public URLs. One call is all-or-nothing; objects already uploaded
// when a sibling file fails are left behind (the pipeline is not
// transactional with the listing that later references the URLs).
type MediaService struct {
	store  ports.ObjectStore
	logger zerolog.Logger
}

func NewMediaService(store ports.ObjectStore, logger zerolog.Logger) *MediaService {
	return &MediaService{store: store, logger: logger}
}

// UploadImages ingests up to a handler-enforced batch of files concurrently
// and returns one public URL per file, preserving input order.
func (s *MediaService) UploadImages(ctx context.Context, files []ports.FileInput) ([]string, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoFiles
	}

	// Validate everything up front so an invalid file never costs a storage
	// round trip for its siblings.
	for _, f := range files {
		if !domain.IsAllowedImageType(f.ContentType) {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: %s (allowed: image/jpeg, image/png, image/webp)", domain.ErrInvalidFileType, f.ContentType)
		}
		if f.Size > domain.MaxImageSize {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: %d bytes (maximum: %d bytes)", domain.ErrFileTooLarge, f.Size, domain.MaxImageSize)
		}
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxUploadConcurrency)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			objectName := storedObjectName(f.OriginalName)
			start := time.Now()

			if err := s.store.Put(gctx, objectName, f.Reader, f.Size, f.ContentType); err != nil {
				s.logger.Error().Err(err).
					Str("object", objectName).
					Str("original_name", f.OriginalName).
					Msg("storage upload failed")
				return fmt.Errorf("%w: %s", domain.ErrUploadFailed, f.OriginalName)
			}

			metrics.UploadDuration.Observe(time.Since(start).Seconds())
			metrics.UploadBytesTotal.Add(float64(f.Size))
			urls[i] = s.store.PublicURL(objectName)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Int("files", len(files)).Msg("images uploaded")
	return urls, nil
}

// storedObjectName generates a globally unique object name, keeping only the
// original filename's extension. The original name never reaches the stored
// key, which rules out collisions and path traversal through crafted names.
func storedObjectName(originalName string) string {
	return uuid.NewString() + path.Ext(originalName)
}
