package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/damacus/iron-navigator/internal/accounts"
	"github.com/damacus/iron-navigator/internal/config"
	"github.com/damacus/iron-navigator/internal/formatter"
	"github.com/damacus/iron-navigator/internal/models"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/damacus/iron-navigator/internal/ui/prompt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// appContainer holds the dependencies shared by every command
type appContainer struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *gorm.DB
	Accounts  *accounts.Repository
	Navigator *services.Navigator
	Formatter *formatter.StorageFormatter
	Prompter  prompt.Prompter
	Out       io.Writer
	Err       io.Writer

	// account is the --account flag; empty means the stored default
	account string
}

func newApp(cfg *config.Config, logger *zap.Logger) (*appContainer, error) {
	db, err := accounts.Open(cfg.Accounts)
	if err != nil {
		return nil, err
	}

	stores, err := services.NewStoreFactory(cfg.Storage)
	if err != nil {
		return nil, err
	}

	repo := accounts.NewRepository(db)
	return &appContainer{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Accounts:  repo,
		Navigator: newNavigator(cfg.Storage, stores, repo, logger),
		Formatter: formatter.NewStorageFormatter(),
		Prompter:  prompt.NewStandardPrompter(os.Stdin, os.Stderr),
		Out:       os.Stdout,
		Err:       os.Stderr,
	}, nil
}

func newNavigator(cfg services.Config, stores services.StoreFactory, source services.IdentitySource, logger *zap.Logger) *services.Navigator {
	clients := services.NewClientFactory(stores,
		services.WithIdentitySource(source),
		services.WithFallbackIdentity(cfg.FallbackIdentity()),
		services.WithFallbackRegion(cfg.FallbackRegion),
		services.WithLogger(logger),
	)
	return services.NewNavigator(clients, logger,
		services.WithPageSize(cfg.PageSize),
		services.WithBackfillWorkers(cfg.BackfillWorkers),
	)
}

// identity returns the identity named by --account, or nil to let the
// client factory fall back to the default account
func (a *appContainer) identity(ctx context.Context) (*models.Identity, error) {
	if a.account == "" {
		return nil, nil
	}
	account, err := a.Accounts.Get(ctx, a.account)
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", a.account, err)
	}
	identity := account.Identity()
	return &identity, nil
}

// Close releases the account database
func (a *appContainer) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
