// Package storage provides the remote object-storage client used to back up
// prediction pictures.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	appconfig "pitchside/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStorage uploads objects to a bucket and resolves their public URLs.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

// S3Storage talks to any S3-compatible endpoint (AWS, MinIO, Supabase storage).
type S3Storage struct {
	client   *s3.Client
	endpoint string
	bucket   string
}

// NewS3Storage builds an S3 client with static credentials and a custom base
// endpoint taken from the application configuration.
func NewS3Storage(cfg *appconfig.Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Storage{
		client:   client,
		endpoint: strings.TrimSuffix(cfg.StorageEndpoint, "/"),
		bucket:   cfg.StorageBucket,
	}, nil
}

// Upload puts the object into the configured bucket under the given key.
func (s *S3Storage) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", key, err)
	}
	return nil
}

// PublicURL returns the path-style public URL for the given object key.
func (s *S3Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
}
