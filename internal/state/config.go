package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"
)

// Config represents the user configuration for mcskin.
// The mapstructure tags let viper overlay environment variables and flags.
type Config struct {
	API     APIConfig     `yaml:"api" json:"api" mapstructure:"api"`
	Skins   SkinsConfig   `yaml:"skins" json:"skins" mapstructure:"skins"`
	Server  ServerConfig  `yaml:"server" json:"server" mapstructure:"server"`
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`
}

// APIConfig holds the Mojang API settings.
type APIConfig struct {
	IdentityURL string `yaml:"identity_url" json:"identity_url" mapstructure:"identity_url"`
	SessionURL  string `yaml:"session_url" json:"session_url" mapstructure:"session_url"`
	// Timeout bounds each HTTP exchange; a negative value disables it.
	Timeout            time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout"`
	UserAgent          string        `yaml:"user_agent" json:"user_agent" mapstructure:"user_agent"`
	CollapseDuplicates bool          `yaml:"collapse_duplicates" json:"collapse_duplicates" mapstructure:"collapse_duplicates"`
}

// SkinsConfig holds skin download settings.
type SkinsConfig struct {
	Directory string `yaml:"directory" json:"directory" mapstructure:"directory"`
	MaxSize   string `yaml:"max_size" json:"max_size" mapstructure:"max_size"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Listen string `yaml:"listen" json:"listen" mapstructure:"listen"`
	// RateLimit is the number of requests per minute allowed per client IP.
	// Zero disables rate limiting.
	RateLimit int `yaml:"rate_limit" json:"rate_limit" mapstructure:"rate_limit"`
	// CORSOrigins enables CORS for the listed origins ("*" for any).
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins" mapstructure:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" mapstructure:"level"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			IdentityURL:        "https://api.mojang.com",
			SessionURL:         "https://sessionserver.mojang.com",
			Timeout:            10 * time.Second,
			UserAgent:          "",
			CollapseDuplicates: false,
		},
		Skins: SkinsConfig{
			Directory: "~/.config/mcskin/skins/",
			MaxSize:   "1MB",
		},
		Server: ServerConfig{
			Listen:      "127.0.0.1:8080",
			RateLimit:   60,
			CORSOrigins: []string{},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// MaxSizeBytes parses MaxSize ("1MB", "512KB") into bytes.
func (s SkinsConfig) MaxSizeBytes() (int64, error) {
	return units.FromHumanSize(s.MaxSize)
}

// LoadConfigFrom loads the configuration from configPath.
// A missing file yields the defaults without creating it.
// A corrupted file is moved aside to configPath.corrupted and the defaults
// are returned.
func LoadConfigFrom(_ context.Context, configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal on top of the defaults so omitted keys keep their values.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		backupPath := configPath + ".corrupted"
		if backupErr := os.Rename(configPath, backupPath); backupErr != nil {
			return nil, fmt.Errorf("config file is corrupted and failed to create backup: %w (original error: %v)", backupErr, err)
		}

		slog.Warn("config file corrupted, using defaults",
			"path", configPath,
			"backup", backupPath,
			"error", err)

		return DefaultConfig(), nil
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfigTo validates cfg and writes it to configPath atomically.
// With backup set, an existing file is kept as configPath.bak and its path
// is returned.
func SaveConfigTo(_ context.Context, configPath string, cfg *Config, backup bool) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("config cannot be nil")
	}

	if err := ValidateConfig(cfg); err != nil {
		return "", fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if backup {
		backupPath, err := AtomicWriteWithBackup(configPath, data, 0644)
		if err != nil {
			return backupPath, fmt.Errorf("failed to write config: %w", err)
		}
		return backupPath, nil
	}

	if err := AtomicWrite(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}

	return "", nil
}

// ValidateConfig validates the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := ValidateURL(cfg.API.IdentityURL); err != nil {
		return fmt.Errorf("invalid api.identity_url: %w", err)
	}

	if err := ValidateURL(cfg.API.SessionURL); err != nil {
		return fmt.Errorf("invalid api.session_url: %w", err)
	}

	if cfg.Skins.Directory != "" {
		if err := ValidatePath(cfg.Skins.Directory); err != nil {
			return fmt.Errorf("invalid skins.directory: %w", err)
		}
	}

	if err := ValidateSize(cfg.Skins.MaxSize); err != nil {
		return fmt.Errorf("invalid skins.max_size: %w", err)
	}

	if err := ValidateListenAddr(cfg.Server.Listen); err != nil {
		return fmt.Errorf("invalid server.listen: %w", err)
	}

	if cfg.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0, got %d", cfg.Server.RateLimit)
	}

	if err := ValidateLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	return nil
}
