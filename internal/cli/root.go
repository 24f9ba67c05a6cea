package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steviee/mcskin/internal/cli/config"
	"github.com/steviee/mcskin/internal/state"
)

// EnvPrefix prefixes environment overrides, e.g. MCSKIN_API_TIMEOUT.
const EnvPrefix = "MCSKIN"

var (
	// Global flags
	cfgFile string
	envFile string
	jsonOut bool
	quiet   bool
	verbose bool

	// Global logger
	logger *slog.Logger

	// settings is the effective configuration of the running command
	settings = state.DefaultConfig()

	buildVersion = "dev"
)

// flagKeys maps command flags onto config keys.
var flagKeys = map[string]string{
	"identity-url": "api.identity_url",
	"session-url":  "api.session_url",
	"timeout":      "api.timeout",
	"collapse":     "api.collapse_duplicates",
	"dir":          "skins.directory",
	"max-size":     "skins.max_size",
	"listen":       "server.listen",
	"rate-limit":   "server.rate_limit",
	"cors-origin":  "server.cors_origins",
}

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	buildVersion = version

	rootCmd := &cobra.Command{
		Use:   "mcskin",
		Short: "Look up Minecraft player skins",
		Long: `mcskin resolves a Minecraft player's skin, cape and arm model from their
username.

Each lookup chains two public Mojang endpoints:
  - username -> profile identifier (api.mojang.com)
  - identifier -> signed profile with textures (sessionserver.mojang.com)

The textures property is decoded to find the skin URL. Players without a
custom skin fall back to the default Steve or Alex skin.`,
		Example: `  # Resolve one or more players
  mcskin resolve Notch jeb_

  # Show the raw profile properties
  mcskin properties Notch

  # Save a skin as PNG
  mcskin download Notch -o notch.png

  # List downloaded skins
  mcskin skins

  # Interactive prompt
  mcskin prompt

  # Serve the HTTP API
  mcskin serve --listen :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}

			// The environment level covers config loading itself
			if err := initLogger(cmd.ErrOrStderr(), os.Getenv(EnvPrefix+"_LOGGING_LEVEL")); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			// Initialize config
			if err := initConfig(cmd); err != nil {
				logger.Error("failed to initialize config", "error", err)
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			return initLogger(cmd.ErrOrStderr(), settings.Logging.Level)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/mcskin/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with MCSKIN_* overrides")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	// Mark json and quiet as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))
	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewPropertiesCommand())
	rootCmd.AddCommand(NewDownloadCommand())
	rootCmd.AddCommand(NewSkinsCommand())
	rootCmd.AddCommand(NewPromptCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	return config.NewCommand(config.Options{
		Settings:   GetSettings,
		ConfigPath: configPath,
		JSONOutput: IsJSONOutput,
	})
}

// loadEnvFile loads a dotenv file into the process environment.
// Variables that are already set win. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// initLogger initializes the global logger. --quiet and --verbose win over
// the configured level.
func initLogger(out io.Writer, configured string) error {
	var level slog.Level
	var handler slog.Handler

	// Determine log level
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	default:
		if err := level.UnmarshalText([]byte(configured)); err != nil {
			level = slog.LevelInfo
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if jsonOut {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// initConfig layers defaults, the config file, MCSKIN_* environment
// variables and command flags into settings.
func initConfig(cmd *cobra.Command) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	fileCfg, err := state.LoadConfigFrom(cmd.Context(), path)
	if err != nil {
		return err
	}
	logger.Debug("loaded config file", "path", path)

	// Environment variables and bound flags override the file values
	v := viper.New()
	setDefaults(v, fileCfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &state.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}

	if err := state.ValidateConfig(cfg); err != nil {
		return err
	}

	settings = cfg
	return nil
}

func setDefaults(v *viper.Viper, cfg *state.Config) {
	v.SetDefault("api.identity_url", cfg.API.IdentityURL)
	v.SetDefault("api.session_url", cfg.API.SessionURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)
	v.SetDefault("api.collapse_duplicates", cfg.API.CollapseDuplicates)
	v.SetDefault("skins.directory", cfg.Skins.Directory)
	v.SetDefault("skins.max_size", cfg.Skins.MaxSize)
	v.SetDefault("server.listen", cfg.Server.Listen)
	v.SetDefault("server.rate_limit", cfg.Server.RateLimit)
	v.SetDefault("server.cors_origins", cfg.Server.CORSOrigins)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// configPath returns the --config flag value or the default config path.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	path, err := state.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("get config path: %w", err)
	}
	return path, nil
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}

// GetSettings returns the effective configuration
func GetSettings() *state.Config {
	return settings
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}
