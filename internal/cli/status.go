package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session and sync queue",
	Long: `Display the state of the tracked session and the local entry queue.

Shows the session kind, elapsed time, pause state and how many finished
entries are still waiting to be uploaded.

Examples:
  focal status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}
	defer deps.Close()

	// Rehydrate whatever session the last process left behind.
	deps.Engine.Restore()
	session := deps.Engine.Session()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	if !session.Running {
		fmt.Fprintf(w, "Session:\tnone\n")
	} else {
		state := "running"
		if session.Paused {
			state = "paused"
		} else if session.Complete() {
			state = "awaiting finalization"
		}
		fmt.Fprintf(w, "Session:\t%s (%s)\n", session.Kind.Label(), state)
		fmt.Fprintf(w, "Elapsed:\t%s\n", formatSeconds(session.ElapsedSeconds))
		if session.Kind.Bounded() {
			fmt.Fprintf(w, "Remaining:\t%s\n", formatSeconds(session.RemainingSeconds()))
		}
		if !session.Task.IsZero() {
			fmt.Fprintf(w, "Task:\t%s\n", session.Task.TaskCode)
		}
		if session.Description != "" {
			fmt.Fprintf(w, "Description:\t%s\n", session.Description)
		}
		fmt.Fprintf(w, "Billable:\t%t\n", session.Billable)
	}

	pending, err := deps.Finalize.PendingCount()
	if err != nil {
		return fmt.Errorf("failed to count pending entries: %w", err)
	}
	fmt.Fprintf(w, "Queued entries:\t%d\n", pending)

	return w.Flush()
}

func formatSeconds(seconds uint32) string {
	h := seconds / 3600
	min := (seconds % 3600) / 60
	sec := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, min, sec)
	}
	return fmt.Sprintf("%dm%02ds", min, sec)
}
