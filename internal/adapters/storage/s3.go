// internal/adapters/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
)

// ObjectAPI is the part of the S3 client the snapshot store calls directly
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// Uploader puts whole objects; *manager.Uploader satisfies it
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
}

// S3Snapshots stores inventory snapshots as JSON objects at <prefix>/<name>
type S3Snapshots struct {
	client   ObjectAPI
	uploader Uploader
	bucket   string
	prefix   string
	region   string
	now      func() time.Time
	logger   *slog.Logger
}

// Statically assert that *S3Snapshots implements the SnapshotStore interface.
var _ ports.SnapshotStore = (*S3Snapshots)(nil)

// NewS3Snapshots creates an S3 snapshot store and makes sure the bucket exists
func NewS3Snapshots(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Snapshots, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	store := NewS3SnapshotsWithClient(client, manager.NewUploader(client), cfg, logger)

	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}

	logger.Info("S3 snapshot storage initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("prefix", cfg.Prefix),
		slog.String("region", cfg.Region))

	return store, nil
}

// NewS3SnapshotsWithClient builds the store around existing clients
func NewS3SnapshotsWithClient(client ObjectAPI, uploader Uploader, cfg *S3Config, logger *slog.Logger) *S3Snapshots {
	return &S3Snapshots{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		region:   cfg.Region,
		now:      time.Now,
		logger:   logger.With(slog.String("storage", "s3")),
	}
}

func buildAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				),
			),
		)
	}

	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
}

func (s *S3Snapshots) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 rejects an explicit location constraint
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	if _, createErr := s.client.CreateBucket(ctx, input); createErr != nil {
		return fmt.Errorf("bucket %s does not exist and could not be created: %w", s.bucket, createErr)
	}

	s.logger.Info("created S3 bucket", slog.String("bucket", s.bucket))
	return nil
}

// Key returns the object key holding the snapshot called name
func (s *S3Snapshots) Key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Load downloads and decodes the snapshot stored under name
func (s *S3Snapshots) Load(ctx context.Context, name string) (*domain.Stock, error) {
	key := s.Key(name)

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: s3://%s/%s", domain.ErrSnapshotNotFound, s.bucket, key)
		}
		return nil, fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot body: %w", err)
	}

	stock, err := domain.DecodeStock(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot s3://%s/%s: %w", s.bucket, key, err)
	}

	s.logger.DebugContext(ctx, "snapshot downloaded",
		slog.String("key", key),
		slog.Int("size", len(data)))

	return stock, nil
}

// Save uploads stock as a single JSON object, replacing any previous one
func (s *S3Snapshots) Save(ctx context.Context, name string, stock *domain.Stock) error {
	key := s.Key(name)

	data, err := stock.EncodeIndented()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"uploaded-at": s.now().UTC().Format(time.RFC3339),
			"upload-id":   uuid.New().String(),
			"item-count":  strconv.Itoa(stock.Len()),
		},
	}

	result, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "snapshot uploaded",
		slog.String("key", key),
		slog.String("location", result.Location))

	return nil
}
