package cmd

import (
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the namespaces and entry counts of the composed mapping",
		Long:  mappingHelp,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Inspect(cmd.Context(), lookupArgs())
		},
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
