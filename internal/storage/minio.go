package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage is a thin wrapper around the minio client, pointed at AWS S3 or any
// S3-compatible endpoint.
type S3Storage struct {
	client *minio.Client
	bucket string
}

// NewS3Storage creates the client. Static credentials are used when an access
// key is configured; otherwise the AWS env, shared-file and IAM providers are
// tried in order, which covers Lambda execution roles.
func NewS3Storage(cfg *S3Config) (*S3Storage, error) {
	if cfg == nil || cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 config missing endpoint or bucket")
	}
	var creds *credentials.Credentials
	if cfg.AccessKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	} else {
		creds = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvAWS{},
			&credentials.FileAWSCredentials{},
			&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
		})
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	return &S3Storage{client: mc, bucket: cfg.Bucket}, nil
}

// Name identifies the backend in metrics and readiness output.
func (s *S3Storage) Name() string { return "s3" }

// Put uploads body under key, replacing any existing object. size may be -1
// when unknown.
func (s *S3Storage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable. The bucket itself is provisioned
// outside this service and is never created here.
func (s *S3Storage) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}
