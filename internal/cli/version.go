package cli

import (
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	UserAgent string `json:"user_agent"`
}

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date, builtBy string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the build version, commit and date, and the User-Agent sent to the
Mojang API.`,
		Example: `  mcskin version
  mcskin version --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := newVersionInfo(version, commit, date, builtBy)
			if IsJSONOutput() {
				return writeJSON(cmd.OutOrStdout(), Output{Status: "success", Data: info})
			}
			return printVersionText(cmd.OutOrStdout(), info)
		},
	}
}

func newVersionInfo(version, commit, date, builtBy string) VersionInfo {
	return VersionInfo{
		Version:   version,
		Commit:    commit,
		Date:      date,
		BuiltBy:   builtBy,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		UserAgent: userAgent(GetSettings()),
	}
}

func printVersionText(w io.Writer, info VersionInfo) error {
	if _, err := fmt.Fprintf(w, "mcskin version %s\n", info.Version); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Commit:\t%s\n", info.Commit)
	_, _ = fmt.Fprintf(tw, "Built:\t%s by %s\n", info.Date, info.BuiltBy)
	_, _ = fmt.Fprintf(tw, "Go:\t%s %s\n", info.GoVersion, info.Platform)
	_, _ = fmt.Fprintf(tw, "User-Agent:\t%s\n", info.UserAgent)

	return tw.Flush()
}
