package handlers

import (
	"context"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockNavigator struct {
	mock.Mock
}

func (m *MockNavigator) ListBuckets(ctx context.Context, id *models.Identity, page, pageSize int) ([]models.StorageItem, int, error) {
	args := m.Called(ctx, id, page, pageSize)
	items, _ := args.Get(0).([]models.StorageItem)
	return items, args.Int(1), args.Error(2)
}

func (m *MockNavigator) ListCurrentLocation(ctx context.Context, id *models.Identity, bucket, prefix string) ([]models.StorageItem, error) {
	args := m.Called(ctx, id, bucket, prefix)
	items, _ := args.Get(0).([]models.StorageItem)
	return items, args.Error(1)
}

func (m *MockNavigator) ListAll(ctx context.Context, id *models.Identity, bucket, prefix string) ([]models.StorageItem, error) {
	args := m.Called(ctx, id, bucket, prefix)
	items, _ := args.Get(0).([]models.StorageItem)
	return items, args.Error(1)
}

func (m *MockNavigator) BackfillRegions(ctx context.Context, id *models.Identity, buckets []string) <-chan []models.BucketRegion {
	args := m.Called(ctx, id, buckets)
	return args.Get(0).(<-chan []models.BucketRegion)
}

func (m *MockNavigator) CreateBucket(ctx context.Context, id *models.Identity, name, region string) error {
	args := m.Called(ctx, id, name, region)
	return args.Error(0)
}

func (m *MockNavigator) Delete(ctx context.Context, id *models.Identity, target models.DeleteTarget) error {
	args := m.Called(ctx, id, target)
	return args.Error(0)
}
