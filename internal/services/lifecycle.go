package services

import (
	"context"

	"github.com/damacus/iron-navigator/internal/models"
	"go.uber.org/zap"
)

// CreateBucket creates name in region, or in the identity's default region when region is empty
func (n *Navigator) CreateBucket(ctx context.Context, id *models.Identity, name, region string) error {
	if len(name) < 3 || len(name) > 63 {
		return ErrInvalidBucketName
	}

	store, identity, err := n.clients.Client(ctx, id, region)
	if err != nil {
		return err
	}
	if region == "" {
		region = n.clients.DefaultRegion(identity)
	}

	if err := store.MakeBucket(ctx, name, region); err != nil {
		n.logger.Error("failed to create bucket", zap.String("bucket", name), zap.String("region", region), zap.Error(err))
		return newProtocolError("CreateBucket", name, "", err, "Cannot create bucket")
	}
	n.logger.Info("bucket created", zap.String("bucket", name), zap.String("region", region))
	return nil
}

// Delete removes a bucket or a single object. Directory targets are refused;
// callers expand them with ListAll and delete the objects one by one.
func (n *Navigator) Delete(ctx context.Context, id *models.Identity, target models.DeleteTarget) error {
	if target.IsBucket {
		return n.deleteBucket(ctx, id, target.Name)
	}
	if target.Bucket == nil || *target.Bucket == "" {
		return ErrNoBucketSpecified
	}
	if target.IsDirectory {
		return ErrDirectoryDeleteUnsupported
	}

	bucket := *target.Bucket
	store, _, err := n.bucketClient(ctx, id, bucket)
	if err != nil {
		return err
	}
	if err := store.RemoveObject(ctx, bucket, target.Name); err != nil {
		n.logger.Error("failed to delete object", zap.String("bucket", bucket), zap.String("key", target.Name), zap.Error(err))
		return &ProtocolError{
			Op:      "DeleteObject",
			Bucket:  bucket,
			Key:     target.Name,
			Message: describe("Cannot delete object", err),
			Err:     err,
		}
	}
	return nil
}

func (n *Navigator) deleteBucket(ctx context.Context, id *models.Identity, name string) error {
	store, _, err := n.bucketClient(ctx, id, name)
	if err != nil {
		return err
	}
	if err := store.RemoveBucket(ctx, name); err != nil {
		n.logger.Error("failed to delete bucket", zap.String("bucket", name), zap.Error(err))
		return newProtocolError("DeleteBucket", name, "", err, "Error deleting bucket")
	}
	n.logger.Info("bucket deleted", zap.String("bucket", name))
	return nil
}
