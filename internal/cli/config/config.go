package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/steviee/mcskin/internal/state"
)

// Options connects the config commands to the root command's state.
type Options struct {
	// Settings returns the effective configuration after defaults, the
	// config file, environment and flags were applied.
	Settings   func() *state.Config
	ConfigPath func() (string, error)
	JSONOutput func() bool
}

// NewCommand creates the config command group
func NewCommand(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and initialize mcskin configuration.

Settings are layered: built-in defaults, then the config file, then
MCSKIN_* environment variables (also read from a .env file), then
command flags. The config file lives in ~/.config/mcskin/config.yaml
by default.`,
		Example: `  # View the effective configuration
  mcskin config show

  # Write a config file with the defaults
  mcskin config init

  # Show configuration file path
  mcskin config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newPathCommand(opts))
	cmd.AddCommand(newInitCommand(opts))

	return cmd
}

func newShowCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), opts.Settings(), opts.JSONOutput())
		},
	}
}

func runShow(w io.Writer, cfg *state.Config, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, map[string]interface{}{
			"status": "success",
			"data":   cfg,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func newPathCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.ConfigPath()
			if err != nil {
				return err
			}

			if opts.JSONOutput() {
				_, statErr := os.Stat(path)
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"status": "success",
					"data": map[string]interface{}{
						"path":   path,
						"exists": statErr == nil,
					},
				})
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newInitCommand(opts Options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write a config file with the default settings and create the skins
directory. An existing file is kept unless --force is given, in which
case it is backed up before being replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.ConfigPath()
			if err != nil {
				return err
			}
			return runInit(cmd, path, force, opts.JSONOutput())
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, path string, force, jsonOutput bool) error {
	w := cmd.OutOrStdout()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	cfg := state.DefaultConfig()
	backup, err := state.SaveConfigTo(cmd.Context(), path, cfg, force)
	if err != nil {
		return err
	}

	skinsDir, err := state.ExpandHome(cfg.Skins.Directory)
	if err != nil {
		return err
	}
	if err := state.EnsureDir(skinsDir); err != nil {
		return fmt.Errorf("create skins directory: %w", err)
	}

	if jsonOutput {
		data := map[string]interface{}{
			"path":      path,
			"skins_dir": skinsDir,
		}
		if backup != "" {
			data["backup"] = backup
		}
		return writeJSON(w, map[string]interface{}{
			"status": "success",
			"data":   data,
		})
	}

	_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	if backup != "" {
		_, _ = fmt.Fprintf(w, "Previous config saved to %s\n", backup)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}
