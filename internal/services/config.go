package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/damacus/iron-navigator/internal/models"
)

// Config holds configuration for the object store connection.
type Config struct {
	// Backend selects the protocol client (minio, aws). auto picks aws for
	// AWS endpoints and minio otherwise.
	Backend string `mapstructure:"backend" default:"auto" validate:"required,oneof=auto minio aws"`
	// Endpoint is the S3 endpoint; empty means AWS for the aws backend.
	Endpoint string `mapstructure:"endpoint" default:"s3.amazonaws.com" validate:"required_if=Backend minio"`
	// UseSSL forces TLS on or off; auto guesses from the endpoint.
	UseSSL string `mapstructure:"use_ssl" default:"auto" validate:"oneof=auto true false"`
	// FallbackRegion is used when neither caller nor account names a region.
	FallbackRegion string `mapstructure:"fallback_region" default:"eu-north-1" validate:"required"`
	// TimeoutSeconds bounds connection setup and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30" validate:"gte=0"`
	// PageSize is the max-keys of every listing request.
	PageSize int `mapstructure:"page_size" default:"1000" validate:"gte=1,lte=1000"`
	// BackfillWorkers bounds concurrent region lookups.
	BackfillWorkers int `mapstructure:"backfill_workers" default:"8" validate:"gte=1"`
	// AccessKey and SecretKey form the identity used when no account is selected.
	AccessKey string `mapstructure:"access_key" default:""`
	SecretKey string `mapstructure:"secret_key" default:"" validate:"required_with=AccessKey"`
	// Region is the default region of that identity.
	Region string `mapstructure:"region" default:""`
}

// FallbackIdentity returns the configured identity, which may be empty
func (c Config) FallbackIdentity() models.Identity {
	return models.Identity{AccessKey: c.AccessKey, SecretKey: c.SecretKey, DefaultRegion: c.Region}
}

type storeInitializer func(cfg Config) StoreFactory

var backends = map[string]storeInitializer{
	"minio": func(cfg Config) StoreFactory {
		f := &MinioStoreFactory{
			Endpoint: cfg.Endpoint,
			Timeout:  time.Duration(cfg.TimeoutSeconds) * time.Second,
		}
		switch cfg.UseSSL {
		case "true":
			f.UseSSL = ptrTo(true)
		case "false":
			f.UseSSL = ptrTo(false)
		}
		return f
	},
	"aws": func(cfg Config) StoreFactory {
		endpoint := cfg.Endpoint
		if isAWSEndpoint(endpoint) {
			endpoint = ""
		}
		return &AWSStoreFactory{Endpoint: endpoint}
	},
}

// SupportedBackends returns the sorted backend names
func SupportedBackends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewStoreFactory returns the store factory for the configured backend.
// The auto backend resolves to aws for AWS endpoints: minio-go reports
// us-east-1 for buckets without a location constraint, which would hide
// the caller's default region.
func NewStoreFactory(cfg Config) (StoreFactory, error) {
	backend := strings.ToLower(cfg.Backend)
	if backend == "auto" || backend == "" {
		backend = "minio"
		if isAWSEndpoint(cfg.Endpoint) {
			backend = "aws"
		}
	}
	initializer, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unsupported storage backend %q (supported: %s)", cfg.Backend, strings.Join(SupportedBackends(), ", "))
	}
	return initializer(cfg), nil
}

func isAWSEndpoint(endpoint string) bool {
	host := strings.ToLower(strings.TrimSuffix(endpoint, "/"))
	host = strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://")
	return host == "" || host == "s3.amazonaws.com" || strings.HasSuffix(host, ".amazonaws.com")
}

func ptrTo[T any](v T) *T {
	return &v
}
