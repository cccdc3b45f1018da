package metrics

import (
	"context"
	"errors"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docnav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	items         *prom.GaugeVec
	lintIssues    *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		items: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "content_items",
			Help:      "Content items produced by the last build per collection",
		}, []string{"collection"}),
		lintIssues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "lint_issues_total",
			Help:      "Frontmatter issues found by severity",
		}, []string{"severity"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.items, pr.lintIssues)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetItemCount(collection string, n int) {
	if p == nil {
		return
	}
	p.items.WithLabelValues(collection).Set(float64(n))
}

func (p *PrometheusRecorder) AddLintIssues(severity string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.lintIssues.WithLabelValues(severity).Add(float64(n))
}

// ResultFor maps an error to a stage result label.
func ResultFor(err error) ResultLabel {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultFatal
	}
}

// OutcomeFor maps an error to a build outcome label.
func OutcomeFor(err error) BuildOutcomeLabel {
	switch ResultFor(err) {
	case ResultSuccess:
		return BuildOutcomeSuccess
	case ResultCanceled:
		return BuildOutcomeCanceled
	default:
		return BuildOutcomeFailed
	}
}

// WriteTextfile writes every metric in reg to path in the text exposition
// format, for the node exporter textfile collector.
func WriteTextfile(path string, reg prom.Gatherer) error {
	return prom.WriteToTextfile(path, reg)
}
