// Package storage implements the object-storage adapter backed by MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Config captures the settings for the MinIO connection. Endpoint is the
// address used for uploads; PublicEndpoint is the browser-facing address
// baked into returned URLs. They differ when storage is only reachable on an
// internal network.
type Config struct {
	Endpoint       string
	PublicEndpoint string
	Bucket         string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
}

// Store talks to a single MinIO bucket.
type Store struct {
	client *minio.Client
	cfg    Config
	logger zerolog.Logger
}

// New initialises the MinIO client. It does not touch the bucket; call
// EnsureBucket explicitly at startup.
func New(cfg Config, logger zerolog.Logger) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Store{client: client, cfg: cfg, logger: logger}, nil
}

// EnsureBucket creates the configured bucket when absent. A creation race
// lost to another instance is swallowed: the bucket exists either way.
func (s *Store) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists check: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, checkErr := s.client.BucketExists(ctx, s.cfg.Bucket)
		if checkErr == nil && exists {
			s.logger.Debug().Str("bucket", s.cfg.Bucket).Msg("bucket created concurrently by another instance")
			return nil
		}
		return fmt.Errorf("make bucket: %w", err)
	}

	s.logger.Info().Str("bucket", s.cfg.Bucket).Msg("bucket created")
	return nil
}

// Put uploads size bytes from r under objectName, recording contentType as
// the object's content-type metadata.
func (s *Store) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", objectName, err)
	}
	return nil
}

// PublicURL builds the browser-resolvable URL for a stored object from the
// public endpoint and the TLS flag.
func (s *Store) PublicURL(objectName string) string {
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.PublicEndpoint, s.cfg.Bucket, objectName)
}

// Ping verifies connectivity for the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	return err
}
