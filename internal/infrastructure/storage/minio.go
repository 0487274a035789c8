package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

// MinIOClient wraps MinIO operations for the recording archive
type MinIOClient struct {
	client        *minio.Client
	bucket        string
	publicURL     string
	presignExpiry time.Duration
	logger        *zap.Logger
}

// NewMinIOClient creates a new MinIO client and makes sure the bucket exists.
// The bucket check is retried with exponential backoff, since MinIO often
// starts alongside the service.
func NewMinIOClient(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client:        minioClient,
		bucket:        cfg.BucketName,
		publicURL:     strings.TrimRight(cfg.PublicURL, "/"),
		presignExpiry: cfg.PresignExpiry,
		logger:        logger,
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(func() error {
		return client.ensureBucket(ctx)
	}, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	if logger != nil {
		logger.Info("storage.ready", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.BucketName))
	}
	return client, nil
}

// ensureBucket creates the bucket when it is missing. Recordings stay
// private; the transcriber reads them through presigned URLs.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	if m.logger != nil {
		m.logger.Info("storage.uploaded", zap.String("object", objectName), zap.Int64("size", size))
	}
	return nil
}

// GetFileURL returns a presigned GET URL for the object
func (m *MinIOClient) GetFileURL(ctx context.Context, objectName string) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, m.presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return withPublicURL(u, m.publicURL)
}

// DeleteFile removes an object
func (m *MinIOClient) DeleteFile(ctx context.Context, objectName string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// withPublicURL swaps scheme and host of a presigned URL for the public
// endpoint, keeping path and signature query intact.
func withPublicURL(u *url.URL, publicURL string) (string, error) {
	if publicURL == "" {
		return u.String(), nil
	}
	pub, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid public URL: %w", err)
	}
	out := *u
	out.Scheme = pub.Scheme
	out.Host = pub.Host
	out.Path = strings.TrimRight(pub.Path, "/") + u.Path
	return out.String(), nil
}
