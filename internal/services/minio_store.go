package services

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore wraps minio.Client to implement ObjectStore
type MinioStore struct {
	client *minio.Client
	core   *minio.Core
}

func (s *MinioStore) ListBuckets(ctx context.Context) ([]BucketEntry, error) {
	buckets, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]BucketEntry, 0, len(buckets))
	for _, b := range buckets {
		entries = append(entries, BucketEntry{Name: b.Name, CreationDate: b.CreationDate})
	}
	return entries, nil
}

// ListObjectsPage issues a single list-objects-v2 request.
// minio.Core exposes the raw continuation token, unlike the channel based ListObjects.
func (s *MinioStore) ListObjectsPage(ctx context.Context, bucket string, opts ListObjectsOptions) (ListObjectsResult, error) {
	if err := ctx.Err(); err != nil {
		return ListObjectsResult{}, err
	}

	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = DefaultPageSize
	}

	page, err := s.core.ListObjectsV2(bucket, opts.Prefix, "", opts.ContinuationToken, opts.Delimiter, maxKeys)
	if err != nil {
		return ListObjectsResult{}, err
	}

	result := ListObjectsResult{
		Objects:               make([]ObjectEntry, 0, len(page.Contents)),
		CommonPrefixes:        make([]string, 0, len(page.CommonPrefixes)),
		IsTruncated:           page.IsTruncated,
		NextContinuationToken: page.NextContinuationToken,
	}
	for _, obj := range page.Contents {
		result.Objects = append(result.Objects, ObjectEntry{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	for _, p := range page.CommonPrefixes {
		result.CommonPrefixes = append(result.CommonPrefixes, p.Prefix)
	}
	return result, nil
}

// BucketLocation returns the bucket's location constraint. minio-go maps
// an empty constraint to us-east-1, so buckets without one never fall back
// to the caller's default region on this backend.
func (s *MinioStore) BucketLocation(ctx context.Context, bucket string) (string, error) {
	return s.client.GetBucketLocation(ctx, bucket)
}

func (s *MinioStore) MakeBucket(ctx context.Context, bucket, region string) error {
	return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region})
}

func (s *MinioStore) RemoveBucket(ctx context.Context, bucket string) error {
	return s.client.RemoveBucket(ctx, bucket)
}

func (s *MinioStore) HeadObject(ctx context.Context, bucket, key string) (int64, error) {
	info, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

func (s *MinioStore) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
}

func (s *MinioStore) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *MinioStore) RemoveObject(ctx context.Context, bucket, key string) error {
	return s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}

// MinioStoreFactory builds MinioStores against one endpoint
type MinioStoreFactory struct {
	Endpoint string
	// UseSSL overrides the endpoint based guess when set
	UseSSL  *bool
	Timeout time.Duration
}

// shouldUseSSL determines if SSL should be used based on the endpoint.
// Returns false for localhost, 127.0.0.1, and docker service names.
func shouldUseSSL(endpoint string) bool {
	if endpoint == "localhost:9000" || endpoint == "127.0.0.1:9000" {
		return false
	}
	// Docker service names (minio:9000, minio1:9000, ...) but not domain names like minio.example.com
	if strings.HasPrefix(endpoint, "minio") && !strings.Contains(strings.Split(endpoint, ":")[0], ".") && strings.Contains(endpoint, ":9000") {
		return false
	}
	return true
}

// normalizeEndpoint strips the scheme minio-go does not accept
func normalizeEndpoint(endpoint string) (string, *bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		secure := true
		return strings.TrimPrefix(endpoint, "https://"), &secure
	case strings.HasPrefix(endpoint, "http://"):
		secure := false
		return strings.TrimPrefix(endpoint, "http://"), &secure
	}
	return endpoint, nil
}

func (f *MinioStoreFactory) transport() *http.Transport {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
}

func (f *MinioStoreFactory) NewStore(identity models.Identity, region string) (ObjectStore, error) {
	endpoint, secure := normalizeEndpoint(f.Endpoint)
	useSSL := shouldUseSSL(endpoint)
	if secure != nil {
		useSSL = *secure
	}
	if f.UseSSL != nil {
		useSSL = *f.UseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(identity.AccessKey, identity.SecretKey, ""),
		Secure:    useSSL,
		Region:    region,
		Transport: f.transport(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioStore{client: client, core: &minio.Core{Client: client}}, nil
}
