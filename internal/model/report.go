package model

// Format names a text format handled by the engine.
type Format string

const (
	FormatRAS     Format = "ras"
	FormatWidener Format = "aw"
	FormatTiny    Format = "tiny"
)

// Diagnostic describes a recoverable problem: the offending line was dropped.
type Diagnostic struct {
	Path Path
	Line int
	Text string
	Err  error
}

// TransformReport summarizes one transformed file.
type TransformReport struct {
	Path        Path
	Format      Format
	Lines       int // total input lines
	Remapped    int // body lines emitted after validation
	Dropped     int // body lines removed from the output
	Diagnostics []Diagnostic
	Err         error // fatal error, if any
}

// AddDiagnostic records a dropped line.
func (r *TransformReport) AddDiagnostic(line int, text string, err error) {
	r.Dropped++
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Path: r.Path, Line: line, Text: text, Err: err})
}
