package cmd

import (
	"github.com/spf13/cobra"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <before-snapshot-id> <after-snapshot-id>",
	Short: "Compare two snapshots for growth patterns",
	Long: `Compare matches two snapshots taken around a user action and reports
object populations that grew between them.

Growth is bucketed into classes (growing arrays, accumulating event
listeners, leak-prone closures) and only populations that actually grew
are reported, so a pair of identical snapshots yields a clean report.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	binName := BinName()
	compareCmd.Example = `  # Compare snapshots taken before and after opening a dialog
  ` + binName + ` compare before after

  # Compare and persist the report
  ` + binName + ` compare before after --save`
}

func runCompare(cmd *cobra.Command, args []string) error {
	result, err := svc.Compare(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return emitResult(result)
}
