package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/steviee/mcskin/internal/tui"
)

// NewPromptCommand creates the interactive prompt command.
func NewPromptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Resolve players interactively",
		Long: `Open an interactive prompt. Type a username and press Enter to resolve
it; recent results stay on screen until the prompt is closed.

Keys:
  enter   resolve the typed username
  ctrl+u  clear the input
  ctrl+l  clear the history
  esc     quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if IsJSONOutput() {
				return fmt.Errorf("the prompt does not support --json; use resolve instead")
			}

			resolver, err := newResolver(GetSettings(), nil)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				tui.NewModel(cmd.Context(), resolver),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}

			return nil
		},
	}

	addLookupFlags(cmd)

	return cmd
}
