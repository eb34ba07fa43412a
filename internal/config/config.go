// Package config loads the application configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/damacus/iron-navigator/internal/accounts"
	"github.com/damacus/iron-navigator/internal/logger"
	"github.com/damacus/iron-navigator/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig holds configuration for the HTTP API.
type ServerConfig struct {
	// Address is the listen address.
	Address string `mapstructure:"address" default:":8080" validate:"required"`
	// SessionKey seals session cookies; 32 bytes, or empty for a per-process key.
	SessionKey string `mapstructure:"session_key" default:"" validate:"omitempty,len=32"`
	// SecureCookies marks session cookies Secure.
	SecureCookies bool `mapstructure:"secure_cookies" default:"false"`
}

// Config holds all configuration for the application.
type Config struct {
	// Storage holds configuration for the object store connection.
	Storage services.Config `mapstructure:"storage"`
	// Accounts holds configuration for the account database.
	Accounts accounts.Config `mapstructure:"accounts"`
	// Server holds configuration for the HTTP API.
	Server ServerConfig `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and a .env file in dir.
func LoadConfig(dir string) (*Config, error) {
	// Ignore error if file doesn't exist
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()

	// Register every key with its default so AutomaticEnv can see it
	bindValues(v, Config{}, "")

	// STORAGE_ENDPOINT -> storage.endpoint
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration against its validate tags
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid configuration %s: failed %q", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// bindValues walks the struct and sets viper defaults from the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
