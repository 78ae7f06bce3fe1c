package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rahmatrdn/go-query-advisor/entity"
)

// Metrics holds all Prometheus metrics for the advisor.
type Metrics struct {
	RecordsAnalyzed  *prometheus.CounterVec
	Analyses         *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	Patterns         prometheus.Gauge
	Recommendations  prometheus.Counter
	Anomalies        *prometheus.CounterVec
	PublishFailures  prometheus.Counter
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	recordsAnalyzed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_advisor_records_analyzed_total",
		Help: "Total query records fed into analyses",
	}, []string{"source"})

	analyses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_advisor_analyses_total",
		Help: "Total analysis runs by outcome",
	}, []string{"status"})

	analysisDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "query_advisor_analysis_duration_seconds",
		Help:    "Wall time of one analysis run",
		Buckets: prometheus.ExponentialBuckets(0.005, 4, 8),
	})

	patterns := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "query_advisor_last_run_patterns",
		Help: "Distinct patterns found by the latest analysis run",
	})

	recommendations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "query_advisor_index_recommendations_total",
		Help: "Total index recommendations produced",
	})

	anomalies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_advisor_anomalies_total",
		Help: "Total anomaly flags raised by severity",
	}, []string{"severity"})

	publishFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "query_advisor_publish_failures_total",
		Help: "Anomaly flags that could not be published",
	})

	reg.MustRegister(recordsAnalyzed, analyses, analysisDuration, patterns, recommendations, anomalies, publishFailures)

	return &Metrics{
		RecordsAnalyzed:  recordsAnalyzed,
		Analyses:         analyses,
		AnalysisDuration: analysisDuration,
		Patterns:         patterns,
		Recommendations:  recommendations,
		Anomalies:        anomalies,
		PublishFailures:  publishFailures,
	}
}

// ObserveReport records the outcome of a successful run. A nil receiver is a
// no-op so callers can run without metrics.
func (m *Metrics) ObserveReport(report *entity.AnalysisReport, elapsed time.Duration) {
	if m == nil || report == nil {
		return
	}
	m.Analyses.WithLabelValues("ok").Inc()
	m.RecordsAnalyzed.WithLabelValues(report.Run.Source).Add(float64(report.Run.RecordCount))
	m.AnalysisDuration.Observe(elapsed.Seconds())
	m.Patterns.Set(float64(report.Run.PatternCount))
	m.Recommendations.Add(float64(len(report.Recommendations)))
	for _, a := range report.Anomalies {
		m.Anomalies.WithLabelValues(a.Severity).Inc()
	}
}

// ObserveFailure counts a run that did not produce a report.
func (m *Metrics) ObserveFailure() {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues("error").Inc()
}

func (m *Metrics) ObservePublishFailure() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}
