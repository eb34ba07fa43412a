// Package accounts stores the access-key accounts a user can switch between.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/damacus/iron-navigator/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrAccountNotFound is returned when no account has the requested name
var ErrAccountNotFound = errors.New("account not found")

// Config holds configuration for the account database.
type Config struct {
	// Path is the SQLite database file.
	Path string `mapstructure:"path" default:"iron-navigator.db" validate:"required"`
}

// Account is one stored access-key pair
type Account struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"uniqueIndex;not null" json:"name"`
	Description   string `json:"description"`
	AccessKey     string `gorm:"not null" json:"accessKey"`
	SecretKey     string `gorm:"not null" json:"-"`
	DefaultRegion string `json:"defaultRegion"`
	IsDefault     bool   `gorm:"index" json:"isDefault"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Identity returns the credentials of the account
func (a Account) Identity() models.Identity {
	return models.Identity{AccessKey: a.AccessKey, SecretKey: a.SecretKey, DefaultRegion: a.DefaultRegion}
}

// Open connects to the SQLite database and migrates the schema
func Open(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open account database: %w", err)
	}

	if err := db.AutoMigrate(&Account{}); err != nil {
		return nil, fmt.Errorf("failed to migrate account database: %w", err)
	}
	return db, nil
}

// Repository reads and writes accounts
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every account in creation order
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Get returns the account called name
func (r *Repository) Get(ctx context.Context, name string) (*Account, error) {
	var account Account
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Save inserts or updates an account. Saving a default account clears the flag on the others.
func (r *Repository) Save(ctx context.Context, account *Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if account.IsDefault {
			if err := tx.Model(&Account{}).Where("is_default = ?", true).Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(account).Error
	})
}

// Delete removes the account called name
func (r *Repository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&Account{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Select makes the account called name the default one
func (r *Repository) Select(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account Account
		err := tx.Where("name = ?", name).First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&Account{}).Where("id <> ?", account.ID).Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&account).Update("is_default", true).Error
	})
}

// CurrentIdentity returns the default account, else the oldest one, else nil
func (r *Repository) CurrentIdentity(ctx context.Context) (*models.Identity, error) {
	var account Account
	err := r.db.WithContext(ctx).Order("is_default DESC").Order("id ASC").First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	identity := account.Identity()
	return &identity, nil
}
