package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"remap.dev/pkg/remap/internal/domain"
	m "remap.dev/pkg/remap/internal/model"
)

var composeOutFlag string

// composeCmd represents the compose command.
var composeCmd = newComposeCmd()

func newComposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Write the composed mapping as a single tiny file",
		Long: `Compose every mapping of the chain into one tiny v1 file that maps the first
namespace straight to the last one.

` + mappingHelp,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Compose(cmd.Context(), domain.ComposeArgs{
				LookupArgs:  lookupArgs(),
				Output:      m.Path(composeOutFlag),
				MetricsFile: m.Path(viper.GetString(metricsFileConfigKey)),
			})
		},
	}

	cmd.Flags().StringVarP(&composeOutFlag, composeOutFlagName, "O", "", "tiny file to write (default: standard output)")

	return cmd
}

func init() {
	rootCmd.AddCommand(composeCmd)
}
