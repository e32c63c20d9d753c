package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	m "remap.dev/pkg/remap/internal/model"
)

func TestInitCmd_WritesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--log-file", filepath.Join(tempDir, "remap.log")})

	err = cmd.Execute()
	require.NoError(t, err)

	targetPath := filepath.Join(tempDir, configFileName)
	t.Cleanup(func() { _ = os.Remove(targetPath) })
	info, err := os.Stat(targetPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	require.NotEmpty(t, contents)
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("existing: true\n"), 0o644))
	t.Cleanup(func() { _ = os.Remove(targetPath) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--log-file", filepath.Join(tempDir, "remap.log")})

	err = cmd.Execute()
	require.Error(t, err)
}

func TestInitCmd_WritesChainManifest(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init",
		"--chain", filepath.Join("mappings", "chain.yaml"),
		"-m", filepath.Join("mappings", "official-intermediary.tiny"),
		"-m", filepath.Join("mappings", "intermediary-named.tiny"),
		"--log-file", filepath.Join(tempDir, "remap.log"),
	})

	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "mappings"), 0o755))
	require.NoError(t, cmd.Execute())

	chain, err := manifestStore.LoadChain(m.Path(filepath.Join(tempDir, "mappings", "chain.yaml")))
	require.NoError(t, err)
	require.Len(t, chain.Sources, 2)
	require.Equal(t, m.Path(filepath.Join(tempDir, "mappings", "official-intermediary.tiny")), chain.Sources[0].Path)
}
