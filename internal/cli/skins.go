package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/steviee/mcskin/internal/state"
)

// skinFile is a downloaded skin in the skins directory.
type skinFile struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Bytes    int64     `json:"bytes"`
	Size     string    `json:"size"`
	Modified time.Time `json:"modified"`
}

// NewSkinsCommand creates the skins command.
func NewSkinsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skins",
		Short: "List downloaded skins",
		Long: `List the skin images saved by "mcskin download" in the skins directory.

Each <name>.png file is one player's skin.`,
		Example: `  # List the skins library
  mcskin skins

  # List another directory
  mcskin skins --dir ./skins --json`,
		Aliases: []string{"library"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSkins(cmd.OutOrStdout(), GetSettings().Skins.Directory, IsJSONOutput())
		},
	}

	cmd.Flags().String("dir", state.DefaultConfig().Skins.Directory, "directory of downloaded skins")

	return cmd
}

func runSkins(w io.Writer, dir string, jsonOutput bool) error {
	dir, skins, err := listSkins(dir)
	if err != nil {
		return outputError(w, jsonOutput, err)
	}

	if jsonOutput {
		return writeJSON(w, Output{
			Status: "success",
			Data: map[string]interface{}{
				"directory": dir,
				"skins":     skins,
			},
			Message: fmt.Sprintf("%d skin(s)", len(skins)),
		})
	}

	if len(skins) == 0 {
		_, _ = fmt.Fprintf(w, "No skins in %s\n", dir)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED")
	for _, s := range skins {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Size, s.Modified.Format(time.DateTime))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !IsQuiet() {
		_, _ = fmt.Fprintf(w, "\n%d skin(s) in %s\n", len(skins), dir)
	}
	return nil
}

// listSkins returns the resolved directory and the PNG files in it, sorted
// by name. A missing directory holds no skins.
func listSkins(dir string) (string, []skinFile, error) {
	var err error
	if dir == "" {
		dir, err = state.GetSkinsDir()
	} else {
		dir, err = state.ExpandHome(dir)
	}
	if err != nil {
		return "", nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return dir, []skinFile{}, nil
	}
	if err != nil {
		return dir, nil, fmt.Errorf("read skins directory: %w", err)
	}

	skins := []skinFile{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if !entry.Type().IsRegular() || !strings.EqualFold(ext, ".png") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed since ReadDir.
			continue
		}

		skins = append(skins, skinFile{
			Name:     strings.TrimSuffix(entry.Name(), ext),
			Path:     filepath.Join(dir, entry.Name()),
			Bytes:    info.Size(),
			Size:     units.HumanSize(float64(info.Size())),
			Modified: info.ModTime(),
		})
	}

	return dir, skins, nil
}
