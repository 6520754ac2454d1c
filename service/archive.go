package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sauhard98/sirion/config"
)

// ArchiveService keeps the original uploaded documents in object
// storage so a contract's source file can be re-downloaded later.
type ArchiveService struct {
	client *minio.Client
	bucket string
	config *config.ArchiveConfig
}

func NewArchiveService(cfg *config.ArchiveConfig) (*ArchiveService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &ArchiveService{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *ArchiveService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// StoreDocument uploads the original document under the contract id and
// returns a presigned URL for later retrieval.
func (s *ArchiveService) StoreDocument(ctx context.Context, contractID, filename string, content []byte) (string, error) {
	objectName := fmt.Sprintf("%s/%s", contractID, filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	expiry := time.Duration(s.config.ExpireDays) * 24 * time.Hour
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// DeleteDocument removes a contract's archived document.
func (s *ArchiveService) DeleteDocument(ctx context.Context, contractID, filename string) error {
	objectName := fmt.Sprintf("%s/%s", contractID, filename)
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// PublicURL returns a public URL for the object (if bucket policy allows)
func (s *ArchiveService) PublicURL(contractID, filename string) string {
	protocol := "http"
	if s.config.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s/%s", protocol, s.config.Endpoint, s.bucket, contractID, filename)
}
