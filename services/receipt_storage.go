package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"iqr-control-backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ReceiptURLPrefix = "/uploads/"

// ReceiptStorage persists uploaded receipts. Save returns the public URL
// (/uploads/<key>); Open streams a stored receipt back by key.
type ReceiptStorage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}

var (
	_ ReceiptStorage = (*LocalReceiptStorage)(nil)
	_ ReceiptStorage = (*S3ReceiptStorage)(nil)
)

// NewReceiptStorage picks the backend named by upload.driver
func NewReceiptStorage(ctx context.Context, upload config.UploadConfig, storage config.StorageConfig, logger *zap.Logger) (ReceiptStorage, error) {
	switch upload.Driver {
	case "", "local":
		return NewLocalReceiptStorage(upload.Dir)
	case "s3":
		s, err := NewS3ReceiptStorage(ctx, storage, logger)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown upload driver %q", upload.Driver)
	}
}

// receiptKey names the stored object with a fresh uuid, keeping the original extension
func receiptKey(name string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(name))
}

func validKey(key string) bool {
	return key != "" && filepath.Base(key) == key && !strings.HasPrefix(key, ".")
}

type LocalReceiptStorage struct {
	dir string
}

func NewLocalReceiptStorage(dir string) (*LocalReceiptStorage, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalReceiptStorage{dir: dir}, nil
}

func (s *LocalReceiptStorage) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	key := receiptKey(name)
	f, err := os.OpenFile(filepath.Join(s.dir, key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create receipt file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write receipt file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close receipt file: %w", err)
	}
	return ReceiptURLPrefix + key, nil
}

func (s *LocalReceiptStorage) Open(_ context.Context, key string) (io.ReadCloser, string, error) {
	if !validKey(key) {
		return nil, "", ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return f, contentTypeForKey(key), nil
}

// S3ReceiptStorage keeps receipts in any S3-compatible bucket
type S3ReceiptStorage struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

func NewS3ReceiptStorage(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*S3ReceiptStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &S3ReceiptStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.Named("s3"),
	}, nil
}

// EnsureBucket creates the bucket on first start
func (s *S3ReceiptStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("creating receipt bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *S3ReceiptStorage) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	key := receiptKey(name)
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put receipt object: %w", err)
	}

	s.logger.Debug("receipt stored", zap.String("key", key))
	return ReceiptURLPrefix + key, nil
}

func (s *S3ReceiptStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if !validKey(key) {
		return nil, "", ErrNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("get receipt object: %w", err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = contentTypeForKey(key)
	}
	return out.Body, contentType, nil
}

func contentTypeForKey(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
