package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"remap.dev/pkg/remap/internal/domain"
	m "remap.dev/pkg/remap/internal/model"
)

// rasCmd represents the ras command.
var rasCmd = newRASCmd()

// awCmd represents the aw command.
var awCmd = newAWCmd()

func newRASCmd() *cobra.Command {
	return newTransformCmd(m.FormatRAS,
		"ras [paths...]",
		"Remap access transformer (RAS) files")
}

func newAWCmd() *cobra.Command {
	return newTransformCmd(m.FormatWidener,
		"aw [paths...]",
		"Remap access widener files")
}

func newTransformCmd(format m.Format, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  transformLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Transform(cmd.Context(), domain.TransformArgs{
				LookupArgs:  lookupArgs(),
				Format:      format,
				Paths:       parsePaths(args),
				Include:     viper.GetStringSlice(includeConfigKey),
				OutDir:      m.Path(viper.GetString(outDirConfigKey)),
				Threads:     viper.GetInt(runParallelConfigKey),
				MetricsFile: m.Path(viper.GetString(metricsFileConfigKey)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(rasCmd, awCmd)
}
