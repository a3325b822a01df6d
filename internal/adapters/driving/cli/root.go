// Package cli implements the docrag command-line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/traceleaf/docrag/internal/config"
	"github.com/traceleaf/docrag/internal/core/ports/driving"
	"github.com/traceleaf/docrag/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgPath string
	verbose bool
)

// appConfig is the loaded configuration, available to all commands
// after PersistentPreRunE.
var appConfig config.Config

// pipelineService is the wired retrieval pipeline. Commands that need
// one call ensurePipeline; tests inject mocks here.
var pipelineService driving.Pipeline

// pipelineCleanup releases pipeline resources (audit database handle).
var pipelineCleanup func() error

var rootCmd = &cobra.Command{
	Use:   "docrag",
	Short: "Documentation retrieval pipeline",
	Long: `docrag answers questions against a local documentation corpus.

It segments documents into overlapping chunks, embeds them via an
external provider, and serves similarity search over a persisted
flat index with cited answers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default .docrag/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() {
	defer closePipeline()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func closePipeline() {
	if pipelineCleanup != nil {
		if err := pipelineCleanup(); err != nil {
			logger.Warn("cleanup failed: %v", err)
		}
	}
}
