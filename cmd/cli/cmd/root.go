package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/heapscope/internal/service"
	"github.com/heapscope/pkg/config"
	"github.com/heapscope/pkg/telemetry"
	"github.com/heapscope/pkg/utils"
)

var (
	// Global flags
	verbose    bool
	configPath string
	saveReport bool

	logger utils.Logger
	cfg    *config.Config
	svc    *service.Service

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "heapscope",
	Short: "A heap snapshot retention analysis tool",
	Long: `heapscope diagnoses memory-retention problems in heap snapshots.

It explores the reference graph outward from a chosen object under hard
resource budgets, classifies global-scope objects as leak candidates,
compares two snapshots for growth patterns, and traces an object back to
its root retainer to explain why it is kept alive.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel := utils.LevelInfo
		if verbose {
			logLevel = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(logLevel, os.Stdout)

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if verbose {
			cfg.Log.Level = "debug"
		}

		shutdown, err := telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("telemetry disabled: %v", err)
		} else {
			telemetryShutdown = shutdown
		}

		svc, err = service.New(cfg, logger)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if svc != nil {
			if err := svc.Close(); err != nil {
				logger.Warn("failed to close service: %v", err)
			}
		}
		if telemetryShutdown != nil {
			if err := telemetryShutdown(context.Background()); err != nil {
				logger.Warn("failed to flush telemetry: %v", err)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&saveReport, "save", false, "Write the result as a JSON report artifact")

	binName := BinName()
	rootCmd.Example = `  # Explore the retention graph from a node
  ` + binName + ` explore before 42 --max-depth 3

  # Scan a snapshot for suspicious global-scope objects
  ` + binName + ` classify before

  # Compare two snapshots taken around a user action
  ` + binName + ` compare before after

  # Explain why an object is retained
  ` + binName + ` trace before 42`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}
