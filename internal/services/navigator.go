package services

import (
	"context"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Navigator browses and manipulates one object store on behalf of a caller.
// Every method takes the caller's identity explicitly; nil means "the selected account".
type Navigator struct {
	clients *ClientFactory
	regions *RegionResolver
	fs      afero.Fs
	logger  *zap.Logger

	pageSize          int
	backfillWorkers   int
	transferChunkSize int
}

// NavigatorOption configures a Navigator
type NavigatorOption func(*Navigator)

// WithFs replaces the local filesystem used by transfers
func WithFs(fs afero.Fs) NavigatorOption {
	return func(n *Navigator) {
		n.fs = fs
	}
}

// WithPageSize sets the max-keys of every listing request
func WithPageSize(size int) NavigatorOption {
	return func(n *Navigator) {
		if size > 0 {
			n.pageSize = size
		}
	}
}

// WithBackfillWorkers bounds how many region lookups run at once
func WithBackfillWorkers(workers int) NavigatorOption {
	return func(n *Navigator) {
		if workers > 0 {
			n.backfillWorkers = workers
		}
	}
}

// WithChunkSize sets the download copy buffer size
func WithChunkSize(size int) NavigatorOption {
	return func(n *Navigator) {
		if size > 0 {
			n.transferChunkSize = size
		}
	}
}

func NewNavigator(clients *ClientFactory, logger *zap.Logger, opts ...NavigatorOption) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Navigator{
		clients:           clients,
		regions:           NewRegionResolver(clients, logger),
		fs:                afero.NewOsFs(),
		logger:            logger.Named("navigator"),
		pageSize:          DefaultPageSize,
		backfillWorkers:   8,
		transferChunkSize: 32 * 1024,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Regions exposes the resolver used by the navigator
func (n *Navigator) Regions() *RegionResolver {
	return n.regions
}

// bucketClient resolves the bucket's region and binds a client to it
func (n *Navigator) bucketClient(ctx context.Context, id *models.Identity, bucket string) (ObjectStore, string, error) {
	region, err := n.regions.Resolve(ctx, id, bucket)
	if err != nil {
		return nil, "", err
	}
	store, _, err := n.clients.Client(ctx, id, region)
	if err != nil {
		return nil, "", err
	}
	return store, region, nil
}
