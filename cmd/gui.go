package cmd

import (
	"dirflat/pkg/gui"

	"github.com/spf13/cobra"
)

// guiCmd launches the desktop front-end.
var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Launch the Dirflat desktop interface",
	Long: `Open a window for picking a folder, generating the flattened document
and copying or saving the result.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return gui.Run(logger)
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
