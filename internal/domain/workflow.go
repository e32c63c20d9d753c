// Package domain orchestrates the remapping engines over files on disk.
package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"remap.dev/pkg/remap/internal/adapter"
	"remap.dev/pkg/remap/internal/controller"
	"remap.dev/pkg/remap/internal/domain/lookup"
	"remap.dev/pkg/remap/internal/domain/ras"
	"remap.dev/pkg/remap/internal/domain/tiny"
	"remap.dev/pkg/remap/internal/domain/widener"
	m "remap.dev/pkg/remap/internal/model"
)

// LookupArgs selects the mapping files composed into a lookup.
type LookupArgs struct {
	// Chain is an optional chain manifest; its sources come first.
	Chain m.Path
	// Mappings are tiny files appended to the chain, in chain order.
	Mappings []m.Path
	// Reverse builds the mapping that undoes the chain.
	Reverse bool
}

// TransformArgs contains the arguments of a transform batch.
type TransformArgs struct {
	LookupArgs
	Format  m.Format
	Paths   []m.Path
	Include []string
	// OutDir receives the transformed files under their relative paths. When
	// empty the output is handed to the UI in input order.
	OutDir      m.Path
	Threads     int
	MetricsFile m.Path
}

// ComposeArgs contains the arguments for writing a composed mapping.
type ComposeArgs struct {
	LookupArgs
	// Output is the tiny file to write. When empty the mapping is handed to
	// the UI.
	Output      m.Path
	MetricsFile m.Path
}

// Workflow defines the operations of the remap CLI.
type Workflow interface {
	BuildLookup(ctx context.Context, args LookupArgs) (*lookup.Table, error)
	Transform(ctx context.Context, args TransformArgs) error
	Compose(ctx context.Context, args ComposeArgs) error
	Inspect(ctx context.Context, args LookupArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ManifestStore
	adapter.Metrics
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	manifestStore adapter.ManifestStore,
	metrics adapter.Metrics,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ManifestStore:   manifestStore,
		Metrics:         metrics,
		UI:              ui,
	}
}

// BuildLookup reads every mapping file of args and composes them.
func (w *workflow) BuildLookup(ctx context.Context, args LookupArgs) (*lookup.Table, error) {
	table, _, err := w.buildLookup(ctx, args)
	return table, err
}

func (w *workflow) buildLookup(ctx context.Context, args LookupArgs) (*lookup.Table, m.LookupSummary, error) {
	chain, err := w.chain(args)
	if err != nil {
		return nil, m.LookupSummary{}, err
	}

	sources := make([]lookup.Source, 0, len(chain.Sources))

	for _, src := range chain.Sources {
		if err := ctx.Err(); err != nil {
			return nil, m.LookupSummary{}, err
		}

		data, err := w.ReadFile(src.Path)
		if err != nil {
			return nil, m.LookupSummary{}, fmt.Errorf("read mapping %s: %w", src.Path, err)
		}

		table, err := tiny.Read(bytes.NewReader(data), src.Reversed)
		if err != nil {
			return nil, m.LookupSummary{}, fmt.Errorf("mapping %s: %w", src.Path, err)
		}

		slog.Debug("loaded mapping", "path", src.Path, "reversed", src.Reversed)

		sources = append(sources, table)
	}

	table, err := lookup.BuildLookup(sources...)
	if err != nil {
		return nil, m.LookupSummary{}, fmt.Errorf("compose mappings: %w", err)
	}

	summary := summarize(table, len(sources))
	w.ObserveLookup(summary)
	slog.Info("built lookup", "from", summary.From, "to", summary.To, "sources", summary.Sources,
		"classes", summary.Classes, "fields", summary.Fields, "methods", summary.Methods)

	return table, summary, nil
}

func (w *workflow) chain(args LookupArgs) (m.Chain, error) {
	chain := m.Chain{}

	if args.Chain != "" {
		loaded, err := w.LoadChain(args.Chain)
		if err != nil {
			return m.Chain{}, fmt.Errorf("load chain: %w", err)
		}

		chain = loaded
	}

	for _, path := range args.Mappings {
		chain.Sources = append(chain.Sources, m.ChainSource{Path: path})
	}

	if args.Reverse {
		chain = chain.Reversed()
	}

	return chain, nil
}

func summarize(table *lookup.Table, sources int) m.LookupSummary {
	from, to := table.Namespaces()
	classes, fields, methods := table.Len()

	return m.LookupSummary{From: from, To: to, Sources: sources, Classes: classes, Fields: fields, Methods: methods}
}

// Transform rewrites every selected file through the composed lookup. Files
// are processed concurrently; a fatal error fails only its own file and the
// errors of all files are returned together once the batch has run.
func (w *workflow) Transform(ctx context.Context, args TransformArgs) error {
	if args.Format != m.FormatRAS && args.Format != m.FormatWidener {
		return fmt.Errorf("unsupported transform format %q", args.Format)
	}

	table, err := w.BuildLookup(ctx, args.LookupArgs)
	if err != nil {
		return fmt.Errorf("build lookup: %w", err)
	}

	files, err := w.Collect(args.Paths, args.Include)
	if err != nil {
		return fmt.Errorf("collect files: %w", err)
	}

	slog.Info("transforming files", "format", args.Format, "files", len(files), "threads", args.Threads)

	reports := make([]m.TransformReport, len(files))
	outputs := make([][]byte, len(files))
	errs := make([]error, len(files))

	var group errgroup.Group
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				reports[i] = m.TransformReport{Path: file.Path, Format: args.Format, Err: err}
				errs[i] = err

				return nil
			}

			reports[i], outputs[i], errs[i] = w.transformFile(file, table, args)

			return nil
		})
	}

	_ = group.Wait()

	if err := w.displayOutputs(ctx, files, outputs, args.OutDir); err != nil {
		return err
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if err := w.flushMetrics(args.MetricsFile); err != nil {
		return err
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	return nil
}

func (w *workflow) transformFile(file m.SourceFile, table *lookup.Table, args TransformArgs) (m.TransformReport, []byte, error) {
	start := time.Now()

	report, out, err := w.runEngine(file, table, args.Format)

	w.ObserveReport(report, time.Since(start))

	if err != nil {
		return report, nil, fmt.Errorf("%s: %w", file.Path, err)
	}

	if args.OutDir == "" {
		return report, out, nil
	}

	target := w.JoinPath(string(args.OutDir), string(file.Rel))
	if err := w.WriteFile(target, out); err != nil {
		report.Err = err
		return report, nil, fmt.Errorf("write %s: %w", target, err)
	}

	slog.Debug("wrote transformed file", "source", file.Path, "target", target)

	return report, nil, nil
}

func (w *workflow) runEngine(file m.SourceFile, table *lookup.Table, format m.Format) (m.TransformReport, []byte, error) {
	data, err := w.ReadFile(file.Path)
	if err != nil {
		err = fmt.Errorf("read: %w", err)
		return m.TransformReport{Path: file.Path, Format: format, Err: err}, nil, err
	}

	var out bytes.Buffer

	switch format {
	case m.FormatWidener:
		_, to := table.Namespaces()

		report, directives, err := widener.Transform(bytes.NewReader(data), &out, table,
			widener.WithPath(file.Path), widener.WithNamespace(to))
		for _, d := range directives {
			w.ObserveDirective(d)
		}

		return report, out.Bytes(), err
	default:
		report, err := ras.Transform(bytes.NewReader(data), &out, table,
			ras.WithPath(file.Path), ras.WithInstructionHook(w.ObserveInstruction))

		return report, out.Bytes(), err
	}
}

func (w *workflow) displayOutputs(ctx context.Context, files []m.SourceFile, outputs [][]byte, outDir m.Path) error {
	if outDir != "" {
		return nil
	}

	for i, out := range outputs {
		if out == nil {
			continue
		}

		if err := w.DisplayOutput(ctx, files[i], out); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}

	return nil
}

func (w *workflow) flushMetrics(path m.Path) error {
	if path == "" {
		return nil
	}

	if err := w.Flush(path); err != nil {
		slog.Error("failed to write metrics", "path", path, "error", err)
		return err
	}

	return nil
}

// Compose writes the composed lookup as a single tiny file.
func (w *workflow) Compose(ctx context.Context, args ComposeArgs) error {
	start := time.Now()

	table, err := w.BuildLookup(ctx, args.LookupArgs)
	if err != nil {
		return fmt.Errorf("build lookup: %w", err)
	}

	var out bytes.Buffer
	if err := tiny.Write(&out, table); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}

	classes, fields, methods := table.Len()
	w.ObserveReport(m.TransformReport{
		Path:     args.Output,
		Format:   m.FormatTiny,
		Lines:    1 + classes + fields + methods,
		Remapped: classes + fields + methods,
	}, time.Since(start))

	if args.Output == "" {
		if err := w.DisplayOutput(ctx, m.SourceFile{}, out.Bytes()); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	} else if err := w.WriteFile(args.Output, out.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", args.Output, err)
	}

	return w.flushMetrics(args.MetricsFile)
}

// Inspect shows the namespaces and entry counts of the composed lookup.
func (w *workflow) Inspect(ctx context.Context, args LookupArgs) error {
	_, summary, err := w.buildLookup(ctx, args)
	if err != nil {
		return fmt.Errorf("build lookup: %w", err)
	}

	if err := w.DisplayLookup(ctx, summary); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}
