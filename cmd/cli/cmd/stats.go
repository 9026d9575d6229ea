package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsTopN int

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <snapshot-id>",
	Short: "Summarize a snapshot's largest objects",
	Long: `Stats ranks the snapshot's largest objects by retained size and
prints a per-type breakdown of counts and sizes. It is a quick orientation
pass before exploring or classifying.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVarP(&statsTopN, "top", "n", 15, "Number of top objects to list")
}

func runStats(cmd *cobra.Command, args []string) error {
	result, err := svc.TopNodes(cmd.Context(), args[0], statsTopN)
	if err != nil {
		return err
	}

	fmt.Printf("Snapshot %s: %d bytes self size total\n\n", args[0], result.TotalSelfSize)
	fmt.Printf("%-4s %-32s %-10s %12s %8s\n", "#", "NAME", "TYPE", "SIZE", "SHARE")
	for i, entry := range result.TopNodes {
		fmt.Printf("%-4d %-32s %-10s %12d %7.2f%%\n",
			i+1, entry.Name, entry.Type, entry.Size, entry.SizePercent)
	}

	fmt.Println("\nBy type:")
	for nodeType, count := range result.TypeCounts {
		fmt.Printf("  %-10s %6d object(s) %12d bytes\n",
			nodeType, count, result.TypeSizes[nodeType])
	}
	return nil
}
