package cmd

import (
	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <snapshot-id>",
	Short: "Score global-scope objects as leak candidates",
	Long: `Classify scans a snapshot for objects anchored in global scope and
scores each one as a leak candidate.

Scores combine object size, container naming (caches, registries, stores),
and scope markers into a confidence between 0 and 95. Well-known runtime
globals are filtered out before scoring.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	binName := BinName()
	classifyCmd.Example = `  # Scan a snapshot for suspicious globals
  ` + binName + ` classify before

  # Scan and persist the report as a JSON artifact
  ` + binName + ` classify before --save`
}

func runClassify(cmd *cobra.Command, args []string) error {
	result, err := svc.ClassifyGlobals(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return emitResult(result)
}
