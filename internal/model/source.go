// Package model defines the data structures shared by the remapping engine.
package model

// Path represents a file system path.
type Path string

// Namespace identifies one view of symbol names (e.g. "official" or "named").
type Namespace string

// MemberKey identifies a field or method by owner, name and descriptor.
// Two keys are equal only if all three components are equal verbatim.
// A class target is a MemberKey with empty Name and Desc.
type MemberKey struct {
	Owner string
	Name  string
	Desc  string
}

// IsClass reports whether the key only names a class.
func (k MemberKey) IsClass() bool {
	return k.Name == "" && k.Desc == ""
}

// String renders the key as owner.name:desc.
func (k MemberKey) String() string {
	if k.IsClass() {
		return k.Owner
	}

	return k.Owner + "." + k.Name + ":" + k.Desc
}

// SourceFile is an input file selected for transformation.
type SourceFile struct {
	Path Path
	// Rel is Path relative to the root it was found under.
	Rel Path
}

// ChainSource is one mapping file of a chain.
type ChainSource struct {
	Path     Path `yaml:"path"`
	Reversed bool `yaml:"reversed,omitempty"`
}

// Chain is an ordered list of mapping files, stored as a YAML manifest.
type Chain struct {
	Version int           `yaml:"version"`
	Sources []ChainSource `yaml:"sources"`
}

// Reversed returns the chain that undoes c: sources in descending order, each
// read the other way around.
func (c Chain) Reversed() Chain {
	out := Chain{Version: c.Version, Sources: make([]ChainSource, len(c.Sources))}

	for i, src := range c.Sources {
		out.Sources[len(c.Sources)-1-i] = ChainSource{Path: src.Path, Reversed: !src.Reversed}
	}

	return out
}
