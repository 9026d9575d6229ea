package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analysis runs",
	Long: `History lists the most recent analysis runs recorded in the run
database, newest first. Run history must be enabled in the config.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <snapshot-id>",
	Short: "Delete all recorded runs for a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	runs := svc.Runs()
	if runs == nil {
		return fmt.Errorf("run history is disabled; enable history in the config file")
	}

	records, err := runs.ListRecentRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Printf("%-36s  %-12s  %-12s  %8s  %s\n", "RUN UUID", "SNAPSHOT", "TYPE", "DURATION", "CREATED")
	for _, rec := range records {
		fmt.Printf("%-36s  %-12s  %-12s  %6dms  %s\n",
			rec.RunUUID,
			rec.SnapshotID,
			rec.ResultType,
			rec.DurationMS,
			rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	runs := svc.Runs()
	if runs == nil {
		return fmt.Errorf("run history is disabled; enable history in the config file")
	}

	deleted, err := runs.DeleteRunsForSnapshot(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d run(s) for snapshot %s\n", deleted, args[0])
	return nil
}
