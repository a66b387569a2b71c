package evidence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/env"
)

// Config holds evidence object storage configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // Optional CDN/public base for stored objects
}

// LoadConfig loads object storage configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "ap-south-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", "billboard-evidence"),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
	}

	if cfg.AccessKeyID == "" {
		return nil, errors.New("S3_ACCESS_KEY_ID is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("S3_SECRET_ACCESS_KEY is required")
	}
	if cfg.BucketName == "" {
		return nil, errors.New("S3_BUCKET_NAME is required")
	}

	return cfg, nil
}

// Store uploads evidence images to S3-compatible object storage and hands
// back durable public URLs.
type Store struct {
	s3Client *s3.Client
	config   *Config
}

// NewStore creates a new evidence store client
func NewStore(cfg *Config) (*Store, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible services (MinIO, B2) need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	store := &Store{
		s3Client: s3Client,
		config:   cfg,
	}

	log.Infof("[Evidence] Initialized object storage client for bucket: %s", cfg.BucketName)
	return store, nil
}

// Put uploads the given bytes under objectKey and returns the public URL.
func (s *Store) Put(ctx context.Context, objectKey string, data []byte, contentType string) (string, error) {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.BucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to object storage: %w", err)
	}

	log.Infof("[Evidence] Uploaded s3://%s/%s (%d bytes)", s.config.BucketName, objectKey, len(data))
	return s.PublicURL(objectKey), nil
}

// Delete removes an object from storage
func (s *Store) Delete(ctx context.Context, objectKey string) error {
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.BucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// PublicURL returns the browser-facing URL for a stored object.
func (s *Store) PublicURL(objectKey string) string {
	if s.config.PublicBaseURL != "" {
		return strings.TrimRight(s.config.PublicBaseURL, "/") + "/" + objectKey
	}
	if s.config.EndpointURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.config.EndpointURL, "/"), s.config.BucketName, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.BucketName, s.config.Region, objectKey)
}

// ObjectKey generates a per-user namespaced key for a primary evidence image.
// Format: evidence/<userID>/<uuid>.<ext>
func ObjectKey(userID uint, filename string) string {
	return fmt.Sprintf("evidence/%d/%s%s", userID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}

// AdditionalObjectKey generates a key for an additional evidence image.
func AdditionalObjectKey(userID uint, filename string) string {
	return fmt.Sprintf("evidence/%d/additional/%s%s", userID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}
