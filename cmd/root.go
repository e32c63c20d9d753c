// Package cmd provides the root command and CLI setup for remap.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"remap.dev/pkg/remap/internal/adapter"
	"remap.dev/pkg/remap/internal/controller"
	"remap.dev/pkg/remap/internal/domain"
	m "remap.dev/pkg/remap/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var manifestStore adapter.ManifestStore
var metrics adapter.Metrics
var workflow domain.Workflow
var ui controller.UI

// Root-level flags shared by every command that needs a lookup.
var (
	chainFlag       string
	mappingFlags    []string
	reverseFlag     bool
	outDirFlag      string
	includePatterns []string
	parallelFlag    int
	metricsFileFlag string
	logFileFlag     string
	verboseFlag     bool
)

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd)
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	manifestStore = adapter.NewManifestStore()
	metrics = adapter.NewPrometheusMetrics()
	workflow = domain.NewWorkflow(fsAdapter, manifestStore, metrics, ui)
}

const mappingHelp = `Mappings are tiny v1 files composed in chain order. They come from a chain
manifest (--chain, YAML with version and sources) followed by every --mapping
file. --reverse builds the mapping that undoes the chain.`

const rootLongDescription = `Remap rewrites the class, field and method names referenced by access
transformer (RAS) and access widener files so they follow a renaming, composed
from one or more tiny v1 mapping files.

` + mappingHelp

const transformLongDescription = `Transform the files found under the given paths (files or directories).
Directories are walked recursively; --include keeps only the files whose path
relative to the directory matches one of the glob patterns ("*" stops at "/",
"**" does not).

` + mappingHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "remap",
		Short:         "Remap access transformer and access widener files",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&chainFlag, chainFlagName, "c", viper.GetString(chainConfigKey), "chain manifest listing the mapping files")
	bindFlagToConfig(flags.Lookup(chainFlagName), chainConfigKey)

	flags.StringArrayVarP(&mappingFlags, mappingFlagName, "m", viper.GetStringSlice(mappingConfigKey), "tiny mapping file appended to the chain (can be repeated)")
	bindFlagToConfig(flags.Lookup(mappingFlagName), mappingConfigKey)

	flags.BoolVar(&reverseFlag, reverseFlagName, viper.GetBool(reverseConfigKey), "build the mapping that undoes the chain")
	bindFlagToConfig(flags.Lookup(reverseFlagName), reverseConfigKey)

	flags.StringVarP(&outDirFlag, outDirFlagName, "d", viper.GetString(outDirConfigKey), "directory receiving transformed files (default: standard output)")
	bindFlagToConfig(flags.Lookup(outDirFlagName), outDirConfigKey)

	flags.StringArrayVarP(&includePatterns, includeFlagName, "i", viper.GetStringSlice(includeConfigKey), "only transform files matching this glob (can be repeated)")
	bindFlagToConfig(flags.Lookup(includeFlagName), includeConfigKey)

	flags.IntVarP(&parallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of files transformed in parallel")
	bindFlagToConfig(flags.Lookup(runParallelFlagName), runParallelConfigKey)

	flags.StringVar(&metricsFileFlag, metricsFileFlagName, viper.GetString(metricsFileConfigKey), "write Prometheus metrics to this file")
	bindFlagToConfig(flags.Lookup(metricsFileFlagName), metricsFileConfigKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func lookupArgs() domain.LookupArgs {
	return domain.LookupArgs{
		Chain:    m.Path(viper.GetString(chainConfigKey)),
		Mappings: parsePaths(viper.GetStringSlice(mappingConfigKey)),
		Reverse:  viper.GetBool(reverseConfigKey),
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
