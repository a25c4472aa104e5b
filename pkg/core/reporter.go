/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface and implementations for batch telemetry. Supports
logging through logrus and Prometheus metrics on a private registry that can be
written out as a textfile at the end of a run.
*/

package core

import (
	"fmt"

	"github.com/kleascm/featuremin/pkg/logging"
	"github.com/kleascm/featuremin/pkg/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reporter defines the interface for telemetry and reporting hooks.
// Hooks are called from worker goroutines and must be safe for concurrent use.
type Reporter interface {
	// OnTargetDescribed is called after a target set has been searched.
	OnTargetDescribed(language string, result *search.Result)
	// OnLanguageCompleted is called when every target of a language is done.
	OnLanguageCompleted(report *LanguageReport)
}

// MultiReporter fans events out to several reporters
type MultiReporter []Reporter

// OnTargetDescribed forwards to every reporter
func (m MultiReporter) OnTargetDescribed(language string, result *search.Result) {
	for _, r := range m {
		r.OnTargetDescribed(language, result)
	}
}

// OnLanguageCompleted forwards to every reporter
func (m MultiReporter) OnLanguageCompleted(report *LanguageReport) {
	for _, r := range m {
		r.OnLanguageCompleted(report)
	}
}

// LoggerReporter logs search and language events
type LoggerReporter struct {
	logger *logging.Logger
}

// NewLoggerReporter creates a new LoggerReporter
func NewLoggerReporter(logger *logging.Logger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnTargetDescribed logs the outcome for one target
func (r *LoggerReporter) OnTargetDescribed(language string, result *search.Result) {
	fields := map[string]interface{}{"duration": result.Duration}
	if result.NaturalClass {
		fields["minimal"] = len(result.Minimal)
	}
	r.logger.LogTarget(language, result.Target, result.NaturalClass, result.MinLength(), fields)
}

// OnLanguageCompleted logs a language summary and its best trees
func (r *LoggerReporter) OnLanguageCompleted(report *LanguageReport) {
	fields := map[string]interface{}{"non_natural": len(report.NonNatural)}
	if len(report.Missing) > 0 {
		fields["missing"] = report.Missing
	}
	r.logger.LogLanguage(report.Language, len(report.Phonemes), report.NaturalClasses, report.Duration, fields)

	switch {
	case report.TreeError != "":
		r.logger.Warning("Tree search skipped", map[string]interface{}{
			"language": report.Language,
			"error":    report.TreeError,
		})
	case report.Trees != nil:
		r.logger.LogTree(report.Language, report.Trees.BestCount, len(report.Trees.Trees), report.Trees.PartialTrees, nil)
	}
}

// PrometheusReporter exports run metrics on its own registry
type PrometheusReporter struct {
	registry *prometheus.Registry

	targets        *prometheus.CounterVec
	greedyFailures prometheus.Counter
	minLength      prometheus.Histogram
	searchDuration prometheus.Histogram
	searchNodes    prometheus.Histogram
	languages      prometheus.Counter
	bestCount      *prometheus.GaugeVec
}

// NewPrometheusReporter creates a PrometheusReporter with a fresh registry
func NewPrometheusReporter() *PrometheusReporter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusReporter{
		registry: reg,
		targets: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "featuremin_targets_total",
			Help: "Target sets described, by result",
		}, []string{"result"}),
		greedyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "featuremin_greedy_failures_total",
			Help: "Greedy searches that used up the pool without a description",
		}),
		minLength: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "featuremin_minimal_description_length",
			Help:    "Minimal description length per natural class",
			Buckets: prometheus.LinearBuckets(0, 1, 12),
		}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "featuremin_search_duration_seconds",
			Help:    "Time to describe one target set",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12), // 10µs to ~40s
		}),
		searchNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "featuremin_search_nodes",
			Help:    "Branch-and-bound nodes visited per natural class",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		languages: factory.NewCounter(prometheus.CounterOpts{
			Name: "featuremin_languages_total",
			Help: "Languages completed",
		}),
		bestCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "featuremin_tree_best_count",
			Help: "Phonemes reaching a minimal description in the best tree",
		}, []string{"language"}),
	}
}

// OnTargetDescribed updates the target metrics
func (r *PrometheusReporter) OnTargetDescribed(language string, result *search.Result) {
	r.searchDuration.Observe(result.Duration.Seconds())
	if !result.NaturalClass {
		r.targets.WithLabelValues("non_natural").Inc()
		return
	}
	r.targets.WithLabelValues("natural").Inc()
	r.searchNodes.Observe(float64(result.Nodes))
	if l := result.MinLength(); l >= 0 {
		r.minLength.Observe(float64(l))
	}
	if result.GreedyFailed {
		r.greedyFailures.Inc()
	}
}

// OnLanguageCompleted updates the language metrics
func (r *PrometheusReporter) OnLanguageCompleted(report *LanguageReport) {
	r.languages.Inc()
	if report.Trees != nil {
		r.bestCount.WithLabelValues(report.Language).Set(float64(report.Trees.BestCount))
	}
}

// Registry returns the registry holding the metrics
func (r *PrometheusReporter) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the metrics in the text exposition format
func (r *PrometheusReporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
