package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	m "remap.dev/pkg/remap/internal/model"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default remap.yaml configuration file",
		Long: `Create a remap.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually.

When --chain names a manifest that does not exist yet, it is created as well,
listing the --mapping files in order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return writeChainManifest(viper.GetString(chainConfigKey), viper.GetStringSlice(mappingConfigKey))
		},
	}
}

func writeChainManifest(path string, mappings []string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return nil
	}

	dir := filepath.Dir(path)
	chain := m.Chain{Sources: make([]m.ChainSource, 0, len(mappings))}

	for _, mapping := range mappings {
		rel, err := filepath.Rel(dir, mapping)
		if err != nil {
			rel = mapping
		}

		chain.Sources = append(chain.Sources, m.ChainSource{Path: m.Path(rel)})
	}

	if err := manifestStore.SaveChain(m.Path(path), chain); err != nil {
		return fmt.Errorf("failed to write chain manifest: %w", err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
