package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/satyammistari/schemadoc/internal/reporter"
)

const version = "0.1.0"

var (
	cfgPath string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:     "schemadoc",
	Short:   "Generate schema documentation from DDL scripts",
	Long:    "schemadoc reads a DDL script (or a live database) and produces a structured\ndocument describing its tables, constraints, indexes and relationships.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		reporter.SetNoColor(noColor)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to YAML config file (default: schemadoc.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
