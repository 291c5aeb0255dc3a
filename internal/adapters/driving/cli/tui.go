package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/veldt-labs/eventscope/internal/adapters/driving/tui"
)

// tuiChanges, when set, signals artifact file changes to the running TUI.
var tuiChanges <-chan struct{}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface.

Upcoming events are shown grouped by month. Typing narrows the list
to events whose text matches; the list updates on every keystroke.

Controls:
  type     - Filter events
  ↑/↓      - Scroll the list
  esc      - Clear the filter
  ctrl+r   - Reload the artifact
  ctrl+c   - Quit`,
	RunE: runTUI,
}

// SetTUIChanges wires the artifact change channel into the tui command.
func SetTUIChanges(ch <-chan struct{}) {
	tuiChanges = ch
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if eventService == nil {
		return errors.New("event service not configured")
	}

	// Panic recovery so terminal state problems come with a trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(eventService)
	ports.Changes = tuiChanges

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
