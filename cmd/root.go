package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dtrack-tools/dtrack-report/pkg/logger"
)

// Version is set during build using ldflags
var Version = "dev"

var (
	configPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "dtrack-report",
	Short:   "Reports root dependencies and vulnerabilities from Dependency-Track",
	Long:    `dtrack-report is a CLI client for the Dependency-Track API that lists a project's direct (root-level) dependencies together with their vulnerability findings and a project-wide severity summary.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default .dtrack-report.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
