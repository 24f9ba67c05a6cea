package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/steviee/mcskin/internal/mojang"
	"github.com/steviee/mcskin/internal/server"
	"github.com/steviee/mcskin/internal/state"
	"github.com/steviee/mcskin/internal/tui"
)

// maxParallelResolves bounds concurrent pipelines of one resolve command.
const maxParallelResolves = 8

// resolveResult is the outcome of one username.
type resolveResult struct {
	Username   string
	Resolution *mojang.Resolution
	Err        error
}

// Resolver resolves a username to its profile and textures.
type Resolver interface {
	Resolve(ctx context.Context, username string) (*mojang.Resolution, error)
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <username> [username...]",
		Short: "Resolve players to their skin, cape and model",
		Long: `Resolve one or more usernames to their profile identifier, skin URL,
cape URL and arm model.

Each username runs its own lookup pipeline; several usernames are resolved
concurrently. Players without a custom skin report the default Steve or
Alex skin.`,
		Example: `  # Resolve a single player
  mcskin resolve Notch

  # Resolve several players
  mcskin resolve Notch jeb_ Dinnerbone

  # JSON output
  mcskin resolve Notch --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver(GetSettings(), nil)
			if err != nil {
				return outputError(cmd.OutOrStdout(), IsJSONOutput(), err)
			}
			return runResolve(cmd.Context(), cmd.OutOrStdout(), resolver, args, IsJSONOutput())
		},
	}

	addLookupFlags(cmd)

	return cmd
}

// addLookupFlags adds the flags shared by every command that talks to the
// Mojang API. Their values are bound to the api.* config keys.
func addLookupFlags(cmd *cobra.Command) {
	defaults := state.DefaultConfig()
	cmd.Flags().String("identity-url", defaults.API.IdentityURL, "base URL of the identity lookup")
	cmd.Flags().String("session-url", defaults.API.SessionURL, "base URL of the profile lookup")
	cmd.Flags().Duration("timeout", defaults.API.Timeout, "HTTP timeout per lookup (e.g. 5s)")
	cmd.Flags().Bool("collapse", false, "share lookups of concurrent duplicate usernames")
}

func runResolve(ctx context.Context, w io.Writer, resolver Resolver, usernames []string, jsonOutput bool) error {
	results := resolveAll(ctx, resolver, usernames)

	if jsonOutput {
		return outputResolveJSON(w, results)
	}

	return outputResolveHuman(w, results)
}

// resolveAll resolves every username concurrently. Results keep the input
// order; one failure never cancels the others.
func resolveAll(ctx context.Context, resolver Resolver, usernames []string) []resolveResult {
	results := make([]resolveResult, len(usernames))

	var g errgroup.Group
	g.SetLimit(maxParallelResolves)

	for i, username := range usernames {
		i, username := i, username
		g.Go(func() error {
			res, err := resolver.Resolve(ctx, username)
			results[i] = resolveResult{Username: username, Resolution: res, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func outputResolveJSON(w io.Writer, results []resolveResult) error {
	resolved := make([]server.SkinResponse, 0, len(results))
	errors := make(map[string]string)

	for _, r := range results {
		if r.Err != nil {
			errors[r.Username] = r.Err.Error()
			continue
		}
		resolved = append(resolved, server.NewSkinResponse(r.Resolution))
	}

	data := map[string]interface{}{
		"resolved": resolved,
	}
	if len(errors) > 0 {
		data["errors"] = errors
	}

	status := "success"
	if len(resolved) == 0 {
		status = "error"
	}

	if err := writeJSON(w, Output{
		Status:  status,
		Data:    data,
		Message: fmt.Sprintf("Resolved %d of %d player(s)", len(resolved), len(results)),
	}); err != nil {
		return err
	}

	if len(resolved) == 0 {
		return fmt.Errorf("failed to resolve any players")
	}
	return nil
}

func outputResolveHuman(w io.Writer, results []resolveResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		_, _ = fmt.Fprintln(w, tui.RenderResolution(r.Resolution))
	}

	if failed > 0 {
		_, _ = fmt.Fprintf(w, "\nFailed to resolve %d player(s):\n", failed)
		for _, r := range results {
			if r.Err != nil {
				_, _ = fmt.Fprintf(w, "  - %s: %s\n", r.Username, r.Err)
			}
		}
	}

	if failed == len(results) {
		return fmt.Errorf("failed to resolve any players")
	}

	return nil
}
