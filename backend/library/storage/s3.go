package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store stores objects in an S3 (or S3-compatible, via endpoint) bucket.
type S3Store struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	region     string
	endpoint   string
	publicRead bool
}

// NewS3Store builds a store from the default AWS credential chain. A
// non-empty endpoint switches to path-style addressing (MinIO and friends).
func NewS3Store(ctx context.Context, region, bucket, endpoint string, publicRead bool) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	uploader := manager.NewUploader(client)
	return &S3Store{
		client:     client,
		uploader:   uploader,
		bucket:     bucket,
		region:     region,
		endpoint:   endpoint,
		publicRead: publicRead,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, key string, contentType string, data []byte) (UploadResult, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if s.publicRead {
		input.ACL = "public-read"
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return UploadResult{}, err
	}
	return UploadResult{URL: s.publicURL(key), Key: key}, nil
}

func (s *S3Store) Destroy(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) publicURL(key string) string {
	escaped := url.PathEscape(key)
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}
