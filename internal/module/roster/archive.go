package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nxzen/hackathon-server/internal/shared/config"
)

// Archiver stores a copy of an exported CSV in object storage. Uploads
// are best-effort; the download the admin triggered already succeeded.
type Archiver interface {
	ArchiveExport(ctx context.Context, key string, body []byte) error
}

// S3Archiver uploads exports to an S3-compatible bucket (AWS S3 or
// Cloudflare R2).
type S3Archiver struct {
	client *s3.Client
	bucket string
}

// NewS3Archiver builds an archiver from storage configuration. Returns
// (nil, nil) when no bucket is configured, which disables archiving.
func NewS3Archiver(cfg *config.StorageConfig) (*S3Archiver, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("incomplete storage configuration")
	}

	creds := credentials.NewStaticCredentialsProvider(
		cfg.AccessKeyID,
		cfg.SecretAccessKey,
		"",
	)

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{client: client, bucket: cfg.Bucket}, nil
}

func (a *S3Archiver) ArchiveExport(ctx context.Context, key string, body []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// archiveAsync uploads the export copy without blocking the response.
// Each archived object gets a unique key so repeated exports on the
// same day do not overwrite each other.
func (s *Service) archiveAsync(filename string, content []byte) {
	key := fmt.Sprintf("exports/%s-%s.csv",
		filename[:len(filename)-len(".csv")], uuid.New().String())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.archiver.ArchiveExport(ctx, key, content); err != nil {
			s.logger.Warn("export archive failed",
				zap.String("key", key),
				zap.Error(err))
			return
		}
		s.logger.Info("export archived", zap.String("key", key))
	}()
}
