package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/sonarscan/capture"
)

// Client is the subset of the S3 API used by Store.
type Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// DownloadConfig configures parallel downloads.
type DownloadConfig struct {
	// PartSize is the size of each ranged GET.
	// Default: 16MB
	PartSize int64

	// Concurrency is the number of parts fetched at once.
	// Default: 8
	Concurrency int
}

// DefaultDownloadConfig returns the download settings used by New.
func DefaultDownloadConfig() DownloadConfig {
	return DownloadConfig{
		PartSize:    16 * 1024 * 1024,
		Concurrency: 8,
	}
}

// Store implements capture.Store for S3.
type Store struct {
	client Client
	bucket string
	prefix string
	dl     DownloadConfig
}

// NewStore creates a new S3 capture store.
// rootPrefix is prepended to all keys (e.g. "survey-2024/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
		dl:     DefaultDownloadConfig(),
	}
}

// Option configures New.
type Option func(*options)

type options struct {
	prefix string
	region string
	dl     DownloadConfig
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion overrides the region from the shared AWS config.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithDownloadConfig sets the parallel download settings.
func WithDownloadConfig(cfg DownloadConfig) Option {
	return func(o *options) { o.dl = cfg }
}

// New creates a Store from the default AWS credential chain.
func New(ctx context.Context, bucket string, opts ...Option) (*Store, error) {
	o := options{dl: DefaultDownloadConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	s := NewStore(s3.NewFromConfig(cfg), bucket, o.prefix)
	s.dl = o.dl
	return s, nil
}

// Location returns the bucket and prefix as an s3:// URL.
func (s *Store) Location() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open verifies that the object exists and returns a handle to it.
func (s *Store) Open(ctx context.Context, name string) (capture.Object, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if isNotFound(err) {
		return nil, capture.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &object{
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
		dl:     s.dl,
	}, nil
}

// isNotFound reports the two shapes S3 uses for a missing key: HEAD
// answers NotFound, GET answers NoSuchKey.
func isNotFound(err error) bool {
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	return errors.As(err, &nf) || errors.As(err, &nsk)
}

// object implements capture.Object and capture.Downloader.
type object struct {
	client Client
	bucket string
	key    string
	size   int64
	dl     DownloadConfig
}

func (o *object) Size() int64 {
	return o.size
}

func (o *object) Close() error {
	return nil
}

func (o *object) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	n, err := capture.ClampRange(off, length, o.size)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return http.NoBody, nil
	}

	resp, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, off+n-1)),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// DownloadTo fetches the whole object with parallel ranged requests.
func (o *object) DownloadTo(ctx context.Context, w io.WriterAt) (int64, error) {
	d := manager.NewDownloader(o.client, func(d *manager.Downloader) {
		if o.dl.PartSize > 0 {
			d.PartSize = o.dl.PartSize
		}
		if o.dl.Concurrency > 0 {
			d.Concurrency = o.dl.Concurrency
		}
	})
	return d.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
	})
}
