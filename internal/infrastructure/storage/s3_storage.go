// Package storage keeps rendered label PDFs in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	infraconfig "github.com/erp/sellerops/internal/infrastructure/config"
	"github.com/erp/sellerops/internal/infrastructure/printing"
)

const (
	labelContentType      = "application/pdf"
	defaultPresignExpiry  = time.Hour
	defaultStorageRegion  = "us-east-1"
	defaultLabelKeyPrefix = "labels/"
)

var errEmptyKey = errors.New("storage key is required")

var _ printing.LabelStorage = (*S3LabelStorage)(nil)

// S3LabelStorage keeps label PDFs in a bucket on AWS S3 or a compatible
// server such as MinIO. Store hands back a presigned GET URL.
type S3LabelStorage struct {
	client            *s3.Client
	presigner         *s3.PresignClient
	bucket            string
	keyPrefix         string
	presignExpiration time.Duration
	logger            *zap.Logger
	now               func() time.Time
}

type S3LabelStorageOption func(*S3LabelStorage)

func WithLogger(logger *zap.Logger) S3LabelStorageOption {
	return func(s *S3LabelStorage) { s.logger = logger }
}

// WithPresignExpiration sets how long download URLs stay valid.
func WithPresignExpiration(d time.Duration) S3LabelStorageOption {
	return func(s *S3LabelStorage) { s.presignExpiration = d }
}

// WithKeyPrefix is prepended to every object key; the default is "labels/".
func WithKeyPrefix(prefix string) S3LabelStorageOption {
	return func(s *S3LabelStorage) { s.keyPrefix = prefix }
}

// NewS3LabelStorage builds a client with static credentials. An empty
// endpoint targets AWS itself; a bare host gets https://.
func NewS3LabelStorage(cfg *infraconfig.StorageConfig, opts ...S3LabelStorageOption) (*S3LabelStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	for _, req := range []struct{ value, name string }{
		{cfg.Bucket, "bucket"},
		{cfg.AccessKey, "access key"},
		{cfg.SecretKey, "secret key"},
	} {
		if req.value == "" {
			return nil, fmt.Errorf("storage %s is required", req.name)
		}
	}
	endpoint, err := normalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = defaultStorageRegion
	}
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3LabelStorage{
		client:            client,
		presigner:         s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		keyPrefix:         defaultLabelKeyPrefix,
		presignExpiration: cfg.PresignExpiry,
		logger:            zap.NewNop(),
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presignExpiration <= 0 {
		s.presignExpiration = defaultPresignExpiry
	}
	return s, nil
}

func normalizeEndpoint(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	if _, err := url.Parse(raw); err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}
	return raw, nil
}

// EnsureBucket creates the bucket when HeadBucket says it is missing.
// Losing a creation race to another instance is not an error.
func (s *S3LabelStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noBucket) {
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("Creating label bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	var owned *types.BucketAlreadyOwnedByYou
	if err != nil && !errors.As(err, &owned) {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Store uploads the PDF under {prefix}{year}/{month}/{route_id}.pdf.
func (s *S3LabelStorage) Store(ctx context.Context, req *printing.StoreRequest) (*printing.StoreResult, error) {
	if err := printing.ValidateStoreRequest(req); err != nil {
		return nil, err
	}
	key := s.keyPrefix + printing.LabelKey(req.RouteID, s.now())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(req.PDFData),
		ContentType: aws.String(labelContentType),
		Metadata:    map[string]string{"route-id": req.RouteID.String()},
	})
	if err != nil {
		return nil, storageError("label upload failed", err)
	}
	link, err := s.DownloadURL(ctx, key)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Label PDF uploaded", zap.String("key", key), zap.Int("bytes", len(req.PDFData)))
	return &printing.StoreResult{Key: key, URL: link, Size: int64(len(req.PDFData))}, nil
}

// Get streams the object; the caller closes it.
func (s *S3LabelStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, errEmptyKey
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	var missing *types.NoSuchKey
	switch {
	case errors.As(err, &missing):
		return nil, storageError("PDF not found", err)
	case err != nil:
		return nil, storageError("label download failed", err)
	}
	return out.Body, nil
}

func (s *S3LabelStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		return storageError("label delete failed", err)
	}
	return nil
}

// DownloadURL presigns a GET valid for the configured expiry.
func (s *S3LabelStorage) DownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errEmptyKey
	}
	signed, err := s.presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)},
		s3.WithPresignExpires(s.presignExpiration),
	)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return signed.URL, nil
}

func (s *S3LabelStorage) GetBucket() string { return s.bucket }

func storageError(msg string, err error) error {
	return printing.NewRenderError(printing.ErrCodeStorageFailed, msg, err)
}
