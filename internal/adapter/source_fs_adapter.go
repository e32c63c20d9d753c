// Package adapter contains the infrastructure adapters of the remap CLI.
package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	m "remap.dev/pkg/remap/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when selecting and rewriting files. It hides direct `os` access so
// the workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Collect expands roots into the files to transform. A root naming a file
	// is taken as is; a directory is walked recursively and its files are kept
	// when their path relative to the root matches one of include. An empty
	// include list keeps every file.
	Collect(roots []m.Path, include []string) ([]m.SourceFile, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to path, creating missing parent directories.
	WriteFile(path m.Path, content []byte) error

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the SourceFSAdapter backed by the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Collect implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) Collect(roots []m.Path, include []string) ([]m.SourceFile, error) {
	globs := make([]glob.Glob, 0, len(include))

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}

		globs = append(globs, g)
	}

	var files []m.SourceFile

	for _, root := range roots {
		rootStr := string(root)

		info, err := a.FileInfo(root)
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			files = append(files, m.SourceFile{Path: root, Rel: m.Path(filepath.Base(rootStr))})
			continue
		}

		var found []m.SourceFile

		err = filepath.WalkDir(rootStr, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(rootStr, path)
			if err != nil {
				return err
			}

			if !matchAny(globs, filepath.ToSlash(rel)) {
				return nil
			}

			found = append(found, m.SourceFile{Path: m.Path(path), Rel: m.Path(rel)})

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", rootStr, err)
		}

		sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
		files = append(files, found...)
	}

	return files, nil
}

func matchAny(globs []glob.Glob, rel string) bool {
	if len(globs) == 0 {
		return true
	}

	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}

	return false
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, 0o600)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
