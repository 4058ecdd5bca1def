package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ederavila/focal/internal/app"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "focal",
	Short: "Terminal session timer with pomodoro cycles",
	Long: `focal tracks work sessions from your terminal.

Run it without arguments to open the timer. Free timers run until you stop
them; focus and break cycles run against a fixed duration and chime when
they finish. Finished sessions become time entries that are queued locally
and uploaded to the configured workspace API.

Examples:
  focal                        # Open the timer UI
  focal status                 # Show the current session and queue
  focal sync                   # Upload queued time entries`,
	RunE: runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}
	defer deps.Close()

	model := app.New(deps.Config, deps.Engine, deps.Pomodoro, deps.Quick, deps.Finalize, deps.Logger)

	// Restore after the model subscribed so the rehydrated state reaches it.
	deps.Engine.Restore()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
