package storage

import (
	"bytes"
	"context"
	"fmt"

	appconfig "travel-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores generated exports (ledger CSVs, receipts) somewhere
// operators can fetch them later.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// R2Uploader writes to a Cloudflare R2 bucket through the S3 API.
type R2Uploader struct {
	client *s3.Client
	bucket string
}

// NewR2Uploader returns nil when storage is not configured; callers treat a
// nil uploader as "keep exports local".
func NewR2Uploader(ctx context.Context, cfg *appconfig.Config) (*R2Uploader, error) {
	st := cfg.Storage
	if st.Endpoint == "" || st.Bucket == "" || st.AccessKey == "" || st.SecretKey == "" {
		return nil, nil
	}

	region := st.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			st.AccessKey,
			st.SecretKey,
			"",
		)),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(st.Endpoint)
	})

	return &R2Uploader{client: client, bucket: st.Bucket}, nil
}

// Upload puts an object and returns its bucket key.
func (u *R2Uploader) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}
