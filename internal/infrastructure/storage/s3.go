package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"skill-hire/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 stores uploads in an S3-compatible bucket (AWS, Cloudflare R2, MinIO).
type S3 struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *log.Logger
}

func NewS3(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimRight(cfg.S3PublicURL, "/")
	if publicURL == "" {
		if cfg.S3Endpoint != "" {
			publicURL = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
		}
	}

	if logger != nil {
		logger.Printf("[Storage] using s3 bucket=%s endpoint=%s", cfg.S3Bucket, cfg.S3Endpoint)
	}
	return &S3{client: client, bucket: cfg.S3Bucket, publicURL: publicURL, logger: logger}, nil
}

func (s *S3) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(k),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.publicURL + "/" + k, nil
}

func (s *S3) Delete(ctx context.Context, ref string) error {
	k, err := cleanKey(strings.TrimPrefix(ref, s.publicURL))
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
