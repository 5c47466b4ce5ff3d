package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Content  ContentConfig
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
}

// ContentConfig points at the content directory.
type ContentConfig struct {
	Dir         string
	SeedSamples bool `mapstructure:"seed_samples"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	Columns        int
	LatestLimit    int    `mapstructure:"latest_limit"`
	SkeletonCount  int    `mapstructure:"skeleton_count"`
	SearchModifier string `mapstructure:"search_modifier"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

// Path returns the config file location: $CATALOG_CONFIG or the default under
// ~/.config/catalog.
func Path() string {
	if p := os.Getenv("CATALOG_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(home(), ".config", "catalog", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.dir", filepath.Join(home(), ".local", "share", "catalog", "content"))
	v.SetDefault("content.seed_samples", true)
	v.SetDefault("database.path", filepath.Join(home(), ".local", "share", "catalog", "catalog.db"))
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.columns", 3)
	v.SetDefault("ui.latest_limit", 6)
	v.SetDefault("ui.skeleton_count", 6)
	v.SetDefault("ui.search_modifier", "auto")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(home(), ".local", "state", "catalog", "catalog.log"))
}

// Load reads configuration from file and env. Env var overrides use prefix CATALOG_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("CATALOG_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home(), ".config", "catalog"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CATALOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file means defaults; a malformed one is an error
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the UI cannot render with.
func (c Config) Validate() error {
	if c.UI.Columns < 1 {
		return fmt.Errorf("ui.columns must be at least 1, got %d", c.UI.Columns)
	}
	if c.UI.LatestLimit < 1 {
		return fmt.Errorf("ui.latest_limit must be positive, got %d", c.UI.LatestLimit)
	}
	if c.UI.SkeletonCount < 0 {
		return fmt.Errorf("ui.skeleton_count must not be negative, got %d", c.UI.SkeletonCount)
	}
	switch strings.ToLower(c.UI.SearchModifier) {
	case "", "auto", "ctrl", "control", "alt", "meta", "option":
	default:
		return fmt.Errorf("ui.search_modifier %q: want auto, ctrl or alt", c.UI.SearchModifier)
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("content.dir", cfg.Content.Dir)
	v.Set("content.seed_samples", cfg.Content.SeedSamples)
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.columns", cfg.UI.Columns)
	v.Set("ui.latest_limit", cfg.UI.LatestLimit)
	v.Set("ui.skeleton_count", cfg.UI.SkeletonCount)
	v.Set("ui.search_modifier", cfg.UI.SearchModifier)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}
