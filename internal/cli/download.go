package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/steviee/mcskin/internal/state"
)

// Downloader fetches skin images.
type Downloader interface {
	DownloadSkin(ctx context.Context, textureURL string) ([]byte, error)
}

// downloadOptions holds the resolved destination of a download.
type downloadOptions struct {
	Output    string
	Directory string
}

// NewDownloadCommand creates the download command.
func NewDownloadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <username>",
		Short: "Save a player's skin as PNG",
		Long: `Resolve a player and save their skin image.

Players without a custom skin get their default Steve or Alex skin. By
default the file is written to <skins.directory>/<name>.png using the
player's canonical name.`,
		Example: `  # Save to the skins directory
  mcskin download Notch

  # Save to a specific file
  mcskin download Notch -o notch.png

  # Allow larger images
  mcskin download Notch --max-size 2MB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetSettings()
			resolver, err := newResolver(cfg, nil)
			if err != nil {
				return outputError(cmd.OutOrStdout(), IsJSONOutput(), err)
			}
			opts := downloadOptions{
				Output:    output,
				Directory: cfg.Skins.Directory,
			}
			return runDownload(cmd.Context(), cmd.OutOrStdout(), resolver, resolver.Client(), args[0], opts, IsJSONOutput())
		},
	}

	defaults := state.DefaultConfig()
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default: <dir>/<name>.png)")
	cmd.Flags().String("dir", defaults.Skins.Directory, "directory for downloaded skins")
	cmd.Flags().String("max-size", defaults.Skins.MaxSize, "largest accepted skin image (e.g. 1MB)")
	addLookupFlags(cmd)

	return cmd
}

func runDownload(ctx context.Context, w io.Writer, resolver Resolver, dl Downloader, username string, opts downloadOptions, jsonOutput bool) error {
	res, err := resolver.Resolve(ctx, username)
	if err != nil {
		return outputError(w, jsonOutput, err)
	}

	skinURL := res.EffectiveSkinURL()
	data, err := dl.DownloadSkin(ctx, skinURL)
	if err != nil {
		return outputError(w, jsonOutput, err)
	}

	path := opts.Output
	if path == "" {
		path, err = state.GetSkinPath(opts.Directory, res.Identity.Name)
		if err != nil {
			return outputError(w, jsonOutput, err)
		}
	} else if path, err = state.ExpandHome(path); err != nil {
		return outputError(w, jsonOutput, err)
	}

	if err := state.AtomicWrite(path, data, 0o644); err != nil {
		return outputError(w, jsonOutput, fmt.Errorf("save skin: %w", err))
	}

	slog.Info("skin saved", "username", res.Identity.Name, "path", path, "bytes", len(data))

	if jsonOutput {
		return writeJSON(w, Output{
			Status: "success",
			Data: map[string]interface{}{
				"name":         res.Identity.Name,
				"skin_url":     skinURL,
				"default_skin": res.SkinURL() == "",
				"model":        res.Model(),
				"path":         path,
				"bytes":        len(data),
			},
			Message: fmt.Sprintf("Saved skin of %s", res.Identity.Name),
		})
	}

	if IsQuiet() {
		_, _ = fmt.Fprintln(w, path)
		return nil
	}

	suffix := ""
	if res.SkinURL() == "" {
		suffix = " (default skin)"
	}
	_, _ = fmt.Fprintf(w, "Saved skin of %s%s to %s (%s)\n",
		res.Identity.Name, suffix, path, units.HumanSize(float64(len(data))))

	return nil
}
