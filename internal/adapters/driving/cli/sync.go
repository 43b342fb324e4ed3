package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmcp/internal/core/domain"
)

var (
	syncVersion  string
	syncLocalDir string
)

var syncCmd = &cobra.Command{
	Use:   "sync [library]",
	Short: "Sync documentation of a library version",
	Long: `Fetch, parse, chunk and index the documentation of a library version.
Without --version the latest version is synced. With --local the
documents are read from a directory instead of the remote source.`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status [library]",
	Short: "Show sync status and recent history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSyncStatus,
}

func init() {
	syncCmd.Flags().StringVar(&syncVersion, "version", "", "library version (default latest)")
	syncCmd.Flags().StringVar(&syncLocalDir, "local", "", "sync from a local directory instead of the remote source")
	syncStatusCmd.Flags().StringVar(&syncVersion, "version", "", "library version (default latest)")

	syncCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync orchestrator not configured")
	}

	var (
		run *domain.SyncHistory
		err error
	)
	if syncLocalDir != "" {
		run, err = syncOrchestrator.SyncFromLocal(cmd.Context(), args[0], syncVersion, syncLocalDir)
	} else {
		run, err = syncOrchestrator.Sync(cmd.Context(), args[0], syncVersion)
	}
	if err != nil {
		return err
	}

	printSyncRun(cmd, run)
	return nil
}

func runSyncStatus(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync orchestrator not configured")
	}

	overview, err := syncOrchestrator.Status(cmd.Context(), args[0], syncVersion)
	if err != nil {
		return err
	}

	if overview.IsRunning {
		cmd.Println("A sync is currently running.")
	}
	if overview.LatestRun == nil {
		cmd.Println("Never synced.")
		return nil
	}

	cmd.Println("Latest run:")
	printSyncRun(cmd, overview.LatestRun)

	if len(overview.RecentHistory) > 1 {
		cmd.Println("\nRecent runs:")
		for _, run := range overview.RecentHistory {
			cmd.Printf("  %s  %s  %d docs, %d chunks\n",
				run.StartedAt.Format(time.RFC3339), run.Status,
				run.DocumentsProcessed, run.ChunksCreated)
		}
	}
	return nil
}

func printSyncRun(cmd *cobra.Command, run *domain.SyncHistory) {
	cmd.Printf("  Status:    %s\n", run.Status)
	cmd.Printf("  Started:   %s\n", run.StartedAt.Format(time.RFC3339))
	if run.CompletedAt != nil {
		cmd.Printf("  Completed: %s (%s)\n",
			run.CompletedAt.Format(time.RFC3339),
			run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	cmd.Printf("  Documents: %d\n", run.DocumentsProcessed)
	cmd.Printf("  Chunks:    %d\n", run.ChunksCreated)
	if run.ErrorMessage != "" {
		cmd.Printf("  Error:     %s\n", run.ErrorMessage)
	}
}
