// Package controller renders workflow results for the user.
package controller

import (
	"context"

	"github.com/spf13/cobra"
	m "remap.dev/pkg/remap/internal/model"
)

// UI defines how the workflow presents its results.
type UI interface {
	// DisplayOutput shows the transformed content of a file that is not
	// written to an output directory.
	DisplayOutput(ctx context.Context, file m.SourceFile, content []byte) error
	// DisplayReports summarizes a transform batch and lists its diagnostics.
	DisplayReports(ctx context.Context, reports []m.TransformReport) error
	// DisplayLookup summarizes a composed lookup.
	DisplayLookup(ctx context.Context, summary m.LookupSummary) error
}

// NewUI returns the UI used by the CLI.
func NewUI(cmd *cobra.Command) UI {
	return NewSimpleUI(cmd)
}
