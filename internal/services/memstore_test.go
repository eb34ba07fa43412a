package services_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/minio/minio-go/v7"
)

// memStore is an in-memory ObjectStore with S3 delimiter and pagination semantics
type memStore struct {
	mu      sync.Mutex
	buckets map[string]*memBucket
	// failPrefixes makes listing a prefix fail
	failPrefixes map[string]error
	listCalls    int
}

type memBucket struct {
	region  string
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{buckets: map[string]*memBucket{}, failPrefixes: map[string]error{}}
}

func (s *memStore) put(bucket, region string, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		b = &memBucket{region: region, objects: map[string][]byte{}}
		s.buckets[bucket] = b
	}
	for _, k := range keys {
		b.objects[k] = []byte(k)
	}
}

func noSuchBucket(bucket string) error {
	return minio.ErrorResponse{Code: "NoSuchBucket", Message: "The specified bucket does not exist", BucketName: bucket}
}

func (s *memStore) ListBuckets(_ context.Context) ([]services.BucketEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.buckets))
	for name := range s.buckets {
		names = append(names, name)
	}
	slices.Sort(names)
	entries := make([]services.BucketEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, services.BucketEntry{Name: name})
	}
	return entries, nil
}

func (s *memStore) ListObjectsPage(_ context.Context, bucket string, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++

	if err, ok := s.failPrefixes[opts.Prefix]; ok {
		return services.ListObjectsResult{}, err
	}
	b, ok := s.buckets[bucket]
	if !ok {
		return services.ListObjectsResult{}, noSuchBucket(bucket)
	}

	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		if strings.HasPrefix(k, opts.Prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	// entries holds objects and common prefixes in key order; prefixes end with the delimiter
	type entry struct {
		key      string
		isPrefix bool
	}
	var entries []entry
	seen := map[string]bool{}
	for _, k := range keys {
		rest := k[len(opts.Prefix):]
		if opts.Delimiter != "" {
			if idx := strings.Index(rest, opts.Delimiter); idx >= 0 {
				cp := opts.Prefix + rest[:idx+len(opts.Delimiter)]
				if !seen[cp] {
					seen[cp] = true
					entries = append(entries, entry{key: cp, isPrefix: true})
				}
				continue
			}
		}
		entries = append(entries, entry{key: k})
	}

	start := 0
	if opts.ContinuationToken != "" {
		start, _ = strconv.Atoi(opts.ContinuationToken)
	}
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = services.DefaultPageSize
	}
	end := min(start+maxKeys, len(entries))

	var result services.ListObjectsResult
	for _, e := range entries[start:end] {
		if e.isPrefix {
			result.CommonPrefixes = append(result.CommonPrefixes, e.key)
			continue
		}
		result.Objects = append(result.Objects, services.ObjectEntry{Key: e.key, Size: int64(len(b.objects[e.key]))})
	}
	if end < len(entries) {
		result.IsTruncated = true
		result.NextContinuationToken = strconv.Itoa(end)
	}
	return result, nil
}

func (s *memStore) BucketLocation(_ context.Context, bucket string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		return "", noSuchBucket(bucket)
	}
	return b.region, nil
}

func (s *memStore) MakeBucket(_ context.Context, bucket, region string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buckets[bucket]; ok {
		return minio.ErrorResponse{Code: "BucketAlreadyOwnedByYou", Message: "Your previous request to create the named bucket succeeded and you already own it."}
	}
	s.buckets[bucket] = &memBucket{region: region, objects: map[string][]byte{}}
	return nil
}

func (s *memStore) RemoveBucket(_ context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		return noSuchBucket(bucket)
	}
	if len(b.objects) > 0 {
		return minio.ErrorResponse{Code: "BucketNotEmpty", Message: "The bucket you tried to delete is not empty"}
	}
	delete(s.buckets, bucket)
	return nil
}

func (s *memStore) HeadObject(_ context.Context, bucket, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		return 0, noSuchBucket(bucket)
	}
	data, ok := b.objects[key]
	if !ok {
		return 0, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	return int64(len(data)), nil
}

func (s *memStore) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		return nil, noSuchBucket(bucket)
	}
	data, ok := b.objects[key]
	if !ok {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) PutObject(_ context.Context, bucket, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		return noSuchBucket(bucket)
	}
	b.objects[key] = data
	return nil
}

func (s *memStore) RemoveObject(_ context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[bucket]
	if !ok {
		return noSuchBucket(bucket)
	}
	delete(b.objects, key)
	return nil
}

// memFactory hands out the same memStore for every identity and region
type memFactory struct {
	store *memStore
}

func (f memFactory) NewStore(identity models.Identity, _ string) (services.ObjectStore, error) {
	if identity.IsZero() {
		return nil, errors.New("no identity")
	}
	return f.store, nil
}
