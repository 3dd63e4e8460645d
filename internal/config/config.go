// Package config handles the XDG configuration directory, its settings file,
// and the file paths derived from it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "tasklane"

	// SettingsName is the settings file name without extension (.yaml is implicit).
	SettingsName = "config"

	// EnvPrefix prefixes environment overrides, e.g. TASKLANE_STORE.
	EnvPrefix = "TASKLANE"

	// StoreFile is the default store filename.
	StoreFile = "tasklane.db"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Settings keys.
const (
	KeyStore = "store"
	KeyUser  = "user"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// StorePath is the path of the task store.
	StorePath string

	// UserID owns every list and task this client reads and writes.
	UserID string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for configDir, reading config.yaml from it when present.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklane or $HOME/.config/tasklane.
// Environment variables with the TASKLANE_ prefix override the file.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetDefault(KeyStore, filepath.Join(dir, StoreFile))
	v.SetDefault(KeyUser, os.Getenv("USER"))
	v.SetConfigName(SettingsName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	storePath, err := homedir.Expand(v.GetString(KeyStore))
	if err != nil {
		return nil, fmt.Errorf("expand store path: %w", err)
	}

	return &Config{
		Dir:       dir,
		StorePath: storePath,
		UserID:    v.GetString(KeyUser),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := homedir.Dir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// EnsureStoreDir creates the directory holding the store file.
func (c *Config) EnsureStoreDir() error {
	return os.MkdirAll(filepath.Dir(c.StorePath), 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
