package cmd

import (
	"github.com/spf13/cobra"
)

// traceCmd represents the trace command
var traceCmd = &cobra.Command{
	Use:   "trace <snapshot-id> <node-id>",
	Short: "Explain why an object is retained",
	Long: `Trace walks the retainer chain from the given object back toward a
root and explains, in plain language, why the object is still alive.

The explanation names the root holding the object, scores how likely the
retention is a leak, and suggests a fix when one applies.`,
	Args: cobra.ExactArgs(2),
	RunE: runTrace,
}

func init() {
	rootCmd.AddCommand(traceCmd)

	binName := BinName()
	traceCmd.Example = `  # Explain why node 42 is retained
  ` + binName + ` trace before 42`
}

func runTrace(cmd *cobra.Command, args []string) error {
	result, err := svc.Trace(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return emitResult(result)
}
