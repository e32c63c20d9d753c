package adapter

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	m "remap.dev/pkg/remap/internal/model"
)

// Metrics records transform counters and exports them in the Prometheus text
// format. Implementations are safe for concurrent use.
type Metrics interface {
	ObserveReport(report m.TransformReport, elapsed time.Duration)
	ObserveInstruction(insn m.Instruction)
	ObserveDirective(directive m.Directive)
	ObserveLookup(summary m.LookupSummary)
	// Flush writes every metric to path, replacing the file atomically.
	Flush(path m.Path) error
}

// PrometheusMetrics is a Metrics backed by a private Prometheus registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	files        *prometheus.CounterVec
	lines        *prometheus.CounterVec
	remapped     *prometheus.CounterVec
	dropped      *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	instructions *prometheus.CounterVec
	directives   *prometheus.CounterVec
	entries      *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the remap metrics on a fresh registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &PrometheusMetrics{
		registry: registry,
		files: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remap_files_total",
			Help: "Files transformed, by format and outcome.",
		}, []string{"format", "status"}),
		lines: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remap_lines_total",
			Help: "Input lines read, by format.",
		}, []string{"format"}),
		remapped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remap_lines_remapped_total",
			Help: "Body lines emitted after validation, by format.",
		}, []string{"format"}),
		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remap_lines_dropped_total",
			Help: "Body lines dropped as invalid, by format.",
		}, []string{"format"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "remap_transform_seconds",
			Help:    "Time spent transforming one file.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		instructions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remap_ras_instructions_total",
			Help: "Validated RAS instructions, by scope.",
		}, []string{"scope"}),
		directives: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "remap_widener_directives_total",
			Help: "Access widener directives, by operation.",
		}, []string{"operation"}),
		entries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "remap_lookup_entries",
			Help: "Entries of the composed lookup, by kind.",
		}, []string{"kind"}),
	}
}

// Registry exposes the underlying registry.
func (p *PrometheusMetrics) Registry() *prometheus.Registry {
	return p.registry
}

// ObserveReport implements Metrics.
func (p *PrometheusMetrics) ObserveReport(report m.TransformReport, elapsed time.Duration) {
	format := string(report.Format)

	status := "ok"
	if report.Err != nil {
		status = "failed"
	}

	p.files.WithLabelValues(format, status).Inc()
	p.lines.WithLabelValues(format).Add(float64(report.Lines))
	p.remapped.WithLabelValues(format).Add(float64(report.Remapped))
	p.dropped.WithLabelValues(format).Add(float64(report.Dropped))
	p.duration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// ObserveInstruction implements Metrics.
func (p *PrometheusMetrics) ObserveInstruction(insn m.Instruction) {
	p.instructions.WithLabelValues(insn.Scope.String()).Inc()
}

// ObserveDirective implements Metrics.
func (p *PrometheusMetrics) ObserveDirective(directive m.Directive) {
	p.directives.WithLabelValues(string(directive.Operation)).Inc()
}

// ObserveLookup implements Metrics.
func (p *PrometheusMetrics) ObserveLookup(summary m.LookupSummary) {
	p.entries.WithLabelValues("class").Set(float64(summary.Classes))
	p.entries.WithLabelValues("field").Set(float64(summary.Fields))
	p.entries.WithLabelValues("method").Set(float64(summary.Methods))
}

// Flush implements Metrics.
func (p *PrometheusMetrics) Flush(path m.Path) error {
	if err := prometheus.WriteToTextfile(string(path), p.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}

	return nil
}
