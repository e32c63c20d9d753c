package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "remap.dev/pkg/remap/internal/model"
)

// SimpleUI implements UI with plain text and tables written through the
// cobra command. Transformed content goes to the command's output stream,
// summaries to its error stream so the output stays pipeable.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayOutput writes content verbatim.
func (s *SimpleUI) DisplayOutput(ctx context.Context, _ m.SourceFile, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.cmd.OutOrStdout().Write(content)

	return err
}

// DisplayReports prints a table with one row per file followed by the
// diagnostics of every dropped line.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.TransformReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.errorf("\n%s", renderReportTable(reports))

	for _, report := range reports {
		for _, d := range report.Diagnostics {
			s.errorf("%s:%d: dropped: %v\n", d.Path, d.Line, d.Err)
		}

		if report.Err != nil {
			s.errorf("%s: failed: %v\n", report.Path, report.Err)
		}
	}

	return nil
}

func renderReportTable(reports []m.TransformReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Format", "Lines", "Remapped", "Dropped", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER,
	})

	var lines, remapped, dropped, failed int

	for _, report := range reports {
		table.Append([]string{
			string(report.Path),
			string(report.Format),
			fmt.Sprintf("%d", report.Lines),
			fmt.Sprintf("%d", report.Remapped),
			fmt.Sprintf("%d", report.Dropped),
			reportStatus(report),
		})

		lines += report.Lines
		remapped += report.Remapped
		dropped += report.Dropped

		if report.Err != nil {
			failed++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(reports)),
		"",
		fmt.Sprintf("%d", lines),
		fmt.Sprintf("%d", remapped),
		fmt.Sprintf("%d", dropped),
		fmt.Sprintf("%d failed", failed),
	})

	table.Render()

	return tableBuffer.String()
}

func reportStatus(report m.TransformReport) string {
	switch {
	case report.Err != nil:
		return failedStatusLabel
	case report.Dropped > 0:
		return warnStatusLabel
	default:
		return okStatusLabel
	}
}

// DisplayLookup prints the namespaces and entry counts of a lookup.
func (s *SimpleUI) DisplayLookup(ctx context.Context, summary m.LookupSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Kind", "Entries"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Append([]string{"classes", fmt.Sprintf("%d", summary.Classes)})
	table.Append([]string{"fields", fmt.Sprintf("%d", summary.Fields)})
	table.Append([]string{"methods", fmt.Sprintf("%d", summary.Methods)})
	table.SetFooter([]string{
		fmt.Sprintf("Sources %d", summary.Sources),
		fmt.Sprintf("%d", summary.Classes+summary.Fields+summary.Methods),
	})
	table.Render()

	s.printf("%s -> %s\n\n%s", namespaceLabel(summary.From), namespaceLabel(summary.To), tableBuffer.String())

	return nil
}

func namespaceLabel(ns m.Namespace) string {
	if ns == "" {
		return unknownNamespaceLabel
	}

	return string(ns)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}

const (
	okStatusLabel         = "ok"
	warnStatusLabel       = "dropped"
	failedStatusLabel     = "failed"
	unknownNamespaceLabel = "?"
)
