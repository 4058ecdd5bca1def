package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload queued time entries",
	Long: `Upload locally queued time entries to the workspace API.

Entries queue up when sessions finish while the API is unreachable or not
configured. Sync retries them oldest first and stops at the first failure.

Examples:
  focal sync`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	deps, err := NewDependencies()
	if err != nil {
		return err
	}
	defer deps.Close()

	pending, err := deps.Finalize.PendingCount()
	if err != nil {
		return fmt.Errorf("failed to count pending entries: %w", err)
	}
	if pending == 0 {
		fmt.Println("Nothing to sync.")
		return nil
	}

	fmt.Printf("Syncing %d queued entries...\n", pending)

	delivered, err := deps.Finalize.Flush(context.Background())
	if delivered > 0 {
		fmt.Printf("Uploaded %d entries.\n", delivered)
	}
	if err != nil {
		return fmt.Errorf("sync stopped: %w", err)
	}

	fmt.Println("Queue is empty.")
	return nil
}
