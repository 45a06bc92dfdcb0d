package minio

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/renohome/listing-service/internal/config"
	"go.uber.org/zap"
)

// PhotoStorage keeps listing photos in a MinIO bucket and hands back public
// URLs; listings themselves only ever store the URL strings.
type PhotoStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewPhotoStorage(cfg *config.MinIOConfig, logger *zap.Logger) (*PhotoStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), cfg.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)",
				cfg.Bucket, err, errBucketExists)
		}
		logger.Info("MinIO bucket already exists", zap.String("bucket", cfg.Bucket))
	} else {
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &PhotoStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

// Upload stores photo bytes under a fresh UUID key, keeping the original
// extension, and returns the object's public URL.
func (s *PhotoStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("PhotoStorage.Upload: PutObject failed",
			zap.String("bucket", s.bucket),
			zap.String("key", objectKey),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("PhotoStorage.Upload: file uploaded",
		zap.String("key", objectKey),
		zap.String("url", fileURL),
		zap.Int("size_bytes", len(data)),
	)
	return fileURL, nil
}
