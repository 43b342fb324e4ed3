package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmcp/internal/core/domain"
	"github.com/custodia-labs/docmcp/internal/core/services"
)

var schedulerSchedule string

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Scheduled background syncs",
}

var schedulerRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sync scheduler in the foreground",
	Long: `Run the sync scheduler. All active library versions are re-synced on
the configured cron schedule (scheduler.schedule, default "0 2 * * *").
Blocks until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runScheduler,
}

func init() {
	schedulerRunCmd.Flags().StringVar(&schedulerSchedule, "schedule", "", "cron expression overriding the configured schedule")
	schedulerCmd.AddCommand(schedulerRunCmd)
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, _ []string) error {
	if libraryService == nil || syncOrchestrator == nil {
		return errors.New("services not configured")
	}

	schedule := schedulerSchedule
	if schedule == "" && configStore != nil {
		schedule = configStore.GetString("scheduler.schedule")
	}

	scheduler := services.NewScheduler(domain.SchedulerConfig{
		Enabled:  true,
		Schedule: schedule,
	}, libraryService, syncOrchestrator)

	return scheduler.Start(cmd.Context())
}
