// internal/app/system/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 stores files in an S3-compatible bucket (AWS S3 or MinIO). Keys map to
// object keys directly.
type S3 struct {
	client *s3.Client
	bucket string
}

// S3Config holds explicit construction parameters. Credentials come from the
// default chain (env, shared config, instance role).
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for MinIO-style deployments
	PathStyle bool
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3) Put(ctx context.Context, path string, r io.Reader, opts PutOptions) error {
	input := &s3.PutObjectInput{Bucket: &s.bucket, Key: &path, Body: r}
	if opts.ContentType != "" {
		input.ContentType = &opts.ContentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put s3 object %s: %w", path, err)
	}
	return nil
}

func (s *S3) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &path})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s: %w", path, err)
	}
	return out.Body, nil
}

func (s *S3) Delete(ctx context.Context, path string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &path}); err != nil {
		return fmt.Errorf("delete s3 object %s: %w", path, err)
	}
	return nil
}
