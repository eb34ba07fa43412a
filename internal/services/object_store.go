package services

import (
	"context"
	"io"
	"time"

	"github.com/damacus/iron-navigator/internal/models"
)

// DefaultPageSize is the number of keys requested per listing page
const DefaultPageSize = 1000

// Delimiter separates emulated directories inside keys
const Delimiter = "/"

// BucketEntry is one bucket as reported by the store
type BucketEntry struct {
	Name         string
	CreationDate time.Time
}

// ObjectEntry is one object as reported by the store
type ObjectEntry struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListObjectsOptions selects one page of a list-objects-v2 call
type ListObjectsOptions struct {
	Prefix            string
	Delimiter         string
	MaxKeys           int
	ContinuationToken string
}

// ListObjectsResult contains one page of objects and common prefixes
type ListObjectsResult struct {
	Objects               []ObjectEntry
	CommonPrefixes        []string
	IsTruncated           bool
	NextContinuationToken string
}

// ObjectStore is the protocol surface of one S3 endpoint, bound to one identity and region
type ObjectStore interface {
	ListBuckets(ctx context.Context) ([]BucketEntry, error)
	ListObjectsPage(ctx context.Context, bucket string, opts ListObjectsOptions) (ListObjectsResult, error)
	// BucketLocation returns the raw location constraint, empty when the bucket has none
	BucketLocation(ctx context.Context, bucket string) (string, error)
	MakeBucket(ctx context.Context, bucket, region string) error
	RemoveBucket(ctx context.Context, bucket string) error

	HeadObject(ctx context.Context, bucket, key string) (int64, error)
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	RemoveObject(ctx context.Context, bucket, key string) error
}

// StoreFactory binds an identity and a region into an ObjectStore
type StoreFactory interface {
	NewStore(identity models.Identity, region string) (ObjectStore, error)
}
