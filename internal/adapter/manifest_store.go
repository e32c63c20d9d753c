package adapter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "remap.dev/pkg/remap/internal/model"
)

// CurrentManifestVersion is the only chain manifest version understood.
const CurrentManifestVersion = 1

// ManifestStore loads and saves chain manifests.
type ManifestStore interface {
	// LoadChain reads the manifest at path. Relative source paths are resolved
	// against the manifest's directory.
	LoadChain(path m.Path) (m.Chain, error)
	// SaveChain writes chain to path.
	SaveChain(path m.Path, chain m.Chain) error
}

type manifestStore struct{}

// NewManifestStore returns a ManifestStore backed by YAML files.
func NewManifestStore() ManifestStore {
	return &manifestStore{}
}

func (s *manifestStore) LoadChain(path m.Path) (m.Chain, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Chain{}, fmt.Errorf("read manifest: %w", err)
	}

	var chain m.Chain

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&chain); err != nil {
		return m.Chain{}, fmt.Errorf("%w: decode manifest %s: %v", m.ErrFormat, path, err)
	}

	if chain.Version != CurrentManifestVersion {
		return m.Chain{}, fmt.Errorf("%w: manifest %s has version %d, want %d",
			m.ErrFormat, path, chain.Version, CurrentManifestVersion)
	}

	dir := filepath.Dir(string(path))

	for i, src := range chain.Sources {
		if src.Path == "" {
			return m.Chain{}, fmt.Errorf("%w: manifest %s: source %d has no path", m.ErrFormat, path, i)
		}

		if !filepath.IsAbs(string(src.Path)) {
			chain.Sources[i].Path = m.Path(filepath.Join(dir, string(src.Path)))
		}
	}

	return chain, nil
}

func (s *manifestStore) SaveChain(path m.Path, chain m.Chain) error {
	if chain.Version == 0 {
		chain.Version = CurrentManifestVersion
	}

	data, err := yaml.Marshal(chain)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
