package state

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/imamik/dcdeploy/internal/config"
	"github.com/imamik/dcdeploy/internal/platform/s3"
	"github.com/imamik/dcdeploy/internal/util/naming"
)

// ObjectClient is the subset of the S3 client the store needs.
type ObjectClient interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	CreateBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// S3Store keeps ledgers as objects under a bucket prefix.
type S3Store struct {
	client ObjectClient
	bucket string
	prefix string
}

// NewS3Store creates a store writing to bucket under prefix.
func NewS3Store(client ObjectClient, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// NewS3StoreFromURI creates a store for s3://bucket/prefix. The endpoint and
// keys come from s3cfg when given, otherwise from the AWS default chain.
func NewS3StoreFromURI(uri string, s3cfg *config.S3Config) (*S3Store, error) {
	bucket, prefix, err := s3.ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(prefix, ".yaml") {
		prefix = path.Dir(prefix)
		if prefix == "." {
			prefix = ""
		}
	}

	var endpoint, accessKey, secretKey string
	var opts []s3.Option
	if s3cfg != nil {
		endpoint = objectEndpoint(s3cfg)
		accessKey, secretKey = s3cfg.AccessKey, s3cfg.SecretKey
		if endpoint != "" {
			opts = append(opts, s3.WithPathStyle(true))
		}
	}

	client, err := s3.NewClient(endpoint, accessKey, secretKey, opts...)
	if err != nil {
		return nil, err
	}
	return NewS3Store(client, bucket, prefix), nil
}

// objectEndpoint turns the topology's host:port endpoint into a URL.
func objectEndpoint(cfg *config.S3Config) string {
	if cfg.Endpoint == "" || strings.Contains(cfg.Endpoint, "://") {
		return cfg.Endpoint
	}
	scheme := "https"
	if cfg.UseHTTPS != nil && !*cfg.UseHTTPS {
		scheme = "http"
	}
	return scheme + "://" + cfg.Endpoint
}

// Save uploads doc, creating the bucket if needed.
func (s *S3Store) Save(ctx context.Context, doc *Document) (string, error) {
	data, err := doc.Marshal()
	if err != nil {
		return "", err
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := s.client.CreateBucket(ctx, s.bucket); err != nil {
			return "", err
		}
	}

	key := path.Join(s.prefix, naming.LedgerFile(doc.CreatedAt))
	if err := s.client.PutObject(ctx, s.bucket, key, data); err != nil {
		return "", err
	}
	return s3.URI(s.bucket, key), nil
}

// Load downloads the ledger at an s3:// location.
func (s *S3Store) Load(ctx context.Context, location string) (*Document, error) {
	bucket, key, err := s3.ParseURI(location)
	if err != nil {
		return nil, err
	}
	data, err := s.client.GetObject(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) {
			return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
		}
		return nil, err
	}
	return Unmarshal(data)
}
