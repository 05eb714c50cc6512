// Package s3blob implements ports.BlobStore on S3-compatible object storage.
package s3blob

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/workvortex/vortex-api/internal/ports"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// objectAPI is the subset of *s3.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// maxSignedURLTTL is the longest expiry SigV4 presigning accepts.
const maxSignedURLTTL = 7 * 24 * time.Hour

// Config configures the S3 client. Endpoint is set for MinIO and other S3-compatible stores.
type Config struct {
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	PublicBaseURL string        // objects are addressed as <PublicBaseURL>/<bucket>/<key> when set
	SignedURLTTL  time.Duration // expiry of URLs returned by Put without a PublicBaseURL; capped at 7 days
}

// Store is an S3-backed ports.BlobStore.
type Store struct {
	objects  objectAPI
	presign  presignAPI
	baseURL  string
	region   string
	endpoint string
	signTTL  time.Duration
}

var _ ports.BlobStore = (*Store)(nil)

// New builds a Store from cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Region == "" {
		return nil, errors.New("s3blob: region is required")
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newStore(client, s3.NewPresignClient(client), cfg), nil
}

func newStore(objects objectAPI, presign presignAPI, cfg Config) *Store {
	ttl := cfg.SignedURLTTL
	if ttl <= 0 || ttl > maxSignedURLTTL {
		ttl = maxSignedURLTTL
	}
	return &Store{
		objects:  objects,
		presign:  presign,
		baseURL:  strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		region:   cfg.Region,
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		signTTL:  ttl,
	}
}

// Put uploads the object. It returns the public URL when a PublicBaseURL is
// configured and a presigned GET URL otherwise, since the bucket may be private.
func (s *Store) Put(ctx context.Context, in ports.PutObjectInput) (string, error) {
	if in.Bucket == "" || in.Key == "" {
		return "", errors.New("s3blob: bucket and key are required")
	}
	if in.Body == nil {
		return "", errors.New("s3blob: body is required")
	}
	put := &s3.PutObjectInput{
		Bucket: aws.String(in.Bucket),
		Key:    aws.String(in.Key),
		Body:   in.Body,
	}
	if in.ContentType != "" {
		put.ContentType = aws.String(in.ContentType)
	}
	if in.Size > 0 {
		put.ContentLength = aws.Int64(in.Size)
	}
	if _, err := s.objects.PutObject(ctx, put); err != nil {
		return "", fmt.Errorf("s3 put %s/%s: %w", in.Bucket, in.Key, err)
	}
	if s.baseURL != "" {
		return s.ObjectURL(in.Bucket, in.Key), nil
	}
	return s.SignedURL(ctx, in.Bucket, in.Key, s.signTTL)
}

// Delete removes bucket/key. Deleting a missing object is not an error.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// SignedURL returns a presigned GET URL valid for ttl.
func (s *Store) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

// ObjectURL returns the stable address of bucket/key.
func (s *Store) ObjectURL(bucket, key string) string {
	escaped := escapeKey(key)
	switch {
	case s.baseURL != "":
		return s.baseURL + "/" + bucket + "/" + escaped
	case s.endpoint != "":
		return s.endpoint + "/" + bucket + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.region, escaped)
	}
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
