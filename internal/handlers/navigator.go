package handlers

import (
	"context"

	"github.com/damacus/iron-navigator/internal/models"
)

// Navigator is the part of services.Navigator the handlers use
type Navigator interface {
	ListBuckets(ctx context.Context, id *models.Identity, page, pageSize int) ([]models.StorageItem, int, error)
	ListCurrentLocation(ctx context.Context, id *models.Identity, bucket, prefix string) ([]models.StorageItem, error)
	ListAll(ctx context.Context, id *models.Identity, bucket, prefix string) ([]models.StorageItem, error)
	BackfillRegions(ctx context.Context, id *models.Identity, buckets []string) <-chan []models.BucketRegion
	CreateBucket(ctx context.Context, id *models.Identity, name, region string) error
	Delete(ctx context.Context, id *models.Identity, target models.DeleteTarget) error
}
