package services

import (
	"context"
	"fmt"

	"github.com/damacus/iron-navigator/internal/models"
	"go.uber.org/zap"
)

// FallbackRegion is used when neither the caller nor the identity names a region
const FallbackRegion = "eu-north-1"

// IdentitySource returns the currently selected identity, or nil when none is selected
type IdentitySource interface {
	CurrentIdentity(ctx context.Context) (*models.Identity, error)
}

// StaticIdentitySource always returns the same identity
type StaticIdentitySource struct {
	Identity *models.Identity
}

func (s StaticIdentitySource) CurrentIdentity(_ context.Context) (*models.Identity, error) {
	return s.Identity, nil
}

// ClientFactory resolves which identity and region a call runs with and binds a store to them
type ClientFactory struct {
	stores         StoreFactory
	source         IdentitySource
	fallback       models.Identity
	fallbackRegion string
	logger         *zap.Logger
}

// ClientFactoryOption configures a ClientFactory
type ClientFactoryOption func(*ClientFactory)

// WithIdentitySource sets the store consulted when a call carries no explicit identity
func WithIdentitySource(source IdentitySource) ClientFactoryOption {
	return func(f *ClientFactory) {
		f.source = source
	}
}

// WithFallbackIdentity sets the identity used when the identity source has none
func WithFallbackIdentity(identity models.Identity) ClientFactoryOption {
	return func(f *ClientFactory) {
		f.fallback = identity
	}
}

// WithFallbackRegion replaces FallbackRegion as the last-resort region
func WithFallbackRegion(region string) ClientFactoryOption {
	return func(f *ClientFactory) {
		if region != "" {
			f.fallbackRegion = region
		}
	}
}

// WithLogger sets the logger; the factory is silent without one
func WithLogger(logger *zap.Logger) ClientFactoryOption {
	return func(f *ClientFactory) {
		f.logger = logger
	}
}

// NewClientFactory creates a factory building stores through stores
func NewClientFactory(stores StoreFactory, opts ...ClientFactoryOption) *ClientFactory {
	f := &ClientFactory{
		stores:         stores,
		fallbackRegion: FallbackRegion,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.Named("clients")
	return f
}

// ResolveIdentity picks explicit, then the identity source, then the fallback identity.
// A failing identity source is logged and treated as empty.
func (f *ClientFactory) ResolveIdentity(ctx context.Context, explicit *models.Identity) (models.Identity, error) {
	if explicit != nil && !explicit.IsZero() {
		return *explicit, nil
	}

	if f.source != nil {
		current, err := f.source.CurrentIdentity(ctx)
		switch {
		case err != nil:
			f.logger.Warn("identity store unavailable, using fallback identity", zap.Error(err))
		case current != nil && !current.IsZero():
			return *current, nil
		}
	}

	if f.fallback.IsZero() {
		return models.Identity{}, ErrNoAccountConfigured
	}
	return f.fallback, nil
}

// DefaultRegion returns the identity's default region, or the last-resort region
func (f *ClientFactory) DefaultRegion(identity models.Identity) string {
	if identity.DefaultRegion != "" {
		return identity.DefaultRegion
	}
	return f.fallbackRegion
}

// Client returns a store bound to the resolved identity and to region, or the
// identity's default region when region is empty
func (f *ClientFactory) Client(ctx context.Context, explicit *models.Identity, region string) (ObjectStore, models.Identity, error) {
	identity, err := f.ResolveIdentity(ctx, explicit)
	if err != nil {
		return nil, models.Identity{}, err
	}
	if region == "" {
		region = f.DefaultRegion(identity)
	}

	store, err := f.stores.NewStore(identity, region)
	if err != nil {
		return nil, identity, fmt.Errorf("binding client to %s: %w", region, err)
	}
	f.logger.Debug("client bound", zap.String("access_key", identity.AccessKey), zap.String("region", region))
	return store, identity, nil
}

// LookupClient returns a store bound to no region, suitable for get-bucket-location
func (f *ClientFactory) LookupClient(ctx context.Context, explicit *models.Identity) (ObjectStore, models.Identity, error) {
	identity, err := f.ResolveIdentity(ctx, explicit)
	if err != nil {
		return nil, models.Identity{}, err
	}
	store, err := f.stores.NewStore(identity, "")
	if err != nil {
		return nil, identity, fmt.Errorf("binding lookup client: %w", err)
	}
	return store, identity, nil
}
