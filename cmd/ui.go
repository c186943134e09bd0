package cmd

import (
	"github.com/spf13/cobra"

	"github.com/satyammistari/schemadoc/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui [schema.sql]",
	Short: "Browse a schema interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return tui.Run(path)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
