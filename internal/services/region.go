package services

import (
	"context"

	"github.com/damacus/iron-navigator/internal/models"
	"go.uber.org/zap"
)

// legacyRegions maps old location constraints to region names
var legacyRegions = map[string]string{
	"EU": "eu-west-1",
}

// RegionResolver asks the store which region hosts a bucket.
// Answers are never cached; every call issues a get-bucket-location.
type RegionResolver struct {
	clients *ClientFactory
	logger  *zap.Logger
}

func NewRegionResolver(clients *ClientFactory, logger *zap.Logger) *RegionResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegionResolver{clients: clients, logger: logger.Named("regions")}
}

// Resolve returns the bucket's region, falling back to the caller's default region
// when the bucket reports no location constraint
func (r *RegionResolver) Resolve(ctx context.Context, id *models.Identity, bucket string) (string, error) {
	store, identity, err := r.clients.LookupClient(ctx, id)
	if err != nil {
		return "", err
	}

	location, err := store.BucketLocation(ctx, bucket)
	if err != nil {
		return "", newProtocolError("GetBucketLocation", bucket, "", err, "Cannot locate bucket")
	}

	if location == "" {
		region := r.clients.DefaultRegion(identity)
		r.logger.Debug("bucket has no location constraint", zap.String("bucket", bucket), zap.String("region", region))
		return region, nil
	}
	if mapped, ok := legacyRegions[location]; ok {
		return mapped, nil
	}
	return location, nil
}
