package mocks

import (
	"context"
	"io"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/stretchr/testify/mock"
)

// ObjectStore is a mock implementation of services.ObjectStore
type ObjectStore struct {
	mock.Mock
}

func (m *ObjectStore) ListBuckets(ctx context.Context) ([]services.BucketEntry, error) {
	args := m.Called(ctx)
	if buckets, ok := args.Get(0).([]services.BucketEntry); ok {
		return buckets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ObjectStore) ListObjectsPage(ctx context.Context, bucket string, opts services.ListObjectsOptions) (services.ListObjectsResult, error) {
	args := m.Called(ctx, bucket, opts)
	return args.Get(0).(services.ListObjectsResult), args.Error(1)
}

func (m *ObjectStore) BucketLocation(ctx context.Context, bucket string) (string, error) {
	args := m.Called(ctx, bucket)
	return args.String(0), args.Error(1)
}

func (m *ObjectStore) MakeBucket(ctx context.Context, bucket, region string) error {
	args := m.Called(ctx, bucket, region)
	return args.Error(0)
}

func (m *ObjectStore) RemoveBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *ObjectStore) HeadObject(ctx context.Context, bucket, key string) (int64, error) {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ObjectStore) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if body, ok := args.Get(0).(io.ReadCloser); ok {
		return body, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ObjectStore) PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, bucket, key, body, size, contentType)
	return args.Error(0)
}

func (m *ObjectStore) RemoveObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

// StoreFactory is a mock implementation of services.StoreFactory
type StoreFactory struct {
	mock.Mock
}

func (m *StoreFactory) NewStore(identity models.Identity, region string) (services.ObjectStore, error) {
	args := m.Called(identity, region)
	if store, ok := args.Get(0).(services.ObjectStore); ok {
		return store, args.Error(1)
	}
	return nil, args.Error(1)
}

// IdentitySource is a mock implementation of services.IdentitySource
type IdentitySource struct {
	mock.Mock
}

func (m *IdentitySource) CurrentIdentity(ctx context.Context) (*models.Identity, error) {
	args := m.Called(ctx)
	if identity, ok := args.Get(0).(*models.Identity); ok {
		return identity, args.Error(1)
	}
	return nil, args.Error(1)
}
