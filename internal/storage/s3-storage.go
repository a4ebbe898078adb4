package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Object is a single entry returned by List.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Storage interface {
	List(ctx context.Context, prefix string) ([]Object, error)
	DownloadFile(ctx context.Context, key, path string) error
}

type s3Storage struct {
	client     *minio.Client
	bucketName string
}

// NewS3Storage connects to an S3-compatible store. The bucket must already
// exist; the fetcher only ever reads from it.
func NewS3Storage(ctx context.Context, cfg *config.Config) (Storage, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.S3BucketName)
	}

	return &s3Storage{
		client:     client,
		bucketName: cfg.S3BucketName,
	}, nil
}

func (s *s3Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object

	for info := range s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", info.Err)
		}
		objects = append(objects, Object{
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}

	return objects, nil
}

func (s *s3Storage) DownloadFile(ctx context.Context, key, path string) error {
	if err := s.client.FGetObject(ctx, s.bucketName, key, path, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("failed to download %s from S3: %w", key, err)
	}
	return nil
}
