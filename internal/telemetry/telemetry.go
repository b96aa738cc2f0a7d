// Package telemetry exports Prometheus metrics for the grievance service.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openseva/grievance/internal/domain"
)

// Metrics holds all grievance service Prometheus metrics
type Metrics struct {
	// Submission metrics
	ComplaintsSubmitted *prometheus.CounterVec
	DuplicatesFlagged   prometheus.Counter
	StatusUpdates       *prometheus.CounterVec

	// Classification metrics
	AnalysisDuration prometheus.Histogram

	// Notification metrics
	EmailsSent   prometheus.Counter
	EmailsFailed prometheus.Counter
}

// Provider wraps the metrics registry.
type Provider struct {
	Metrics *Metrics
}

// NewProvider initializes Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{Metrics: initMetrics()}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	return &Metrics{
		ComplaintsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grievance_complaints_submitted_total",
			Help: "Total complaints submitted, by category and priority",
		}, []string{"category", "priority"}),

		DuplicatesFlagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grievance_duplicates_flagged_total",
			Help: "Total submissions flagged as duplicates",
		}),

		StatusUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "grievance_status_updates_total",
			Help: "Total complaint status transitions, by new status",
		}, []string{"status"}),

		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "grievance_analysis_duration_seconds",
			Help:    "Time to classify a single complaint text",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),

		EmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grievance_emails_sent_total",
			Help: "Total notification emails delivered",
		}),

		EmailsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "grievance_emails_failed_total",
			Help: "Total notification emails that failed to deliver",
		}),
	}
}

// RecordSubmission records metrics for an accepted complaint.
func (p *Provider) RecordSubmission(category domain.Category, priority domain.Priority, isDuplicate bool) {
	p.Metrics.ComplaintsSubmitted.WithLabelValues(string(category), string(priority)).Inc()
	if isDuplicate {
		p.Metrics.DuplicatesFlagged.Inc()
	}
}

// RecordStatusUpdate records a complaint status transition.
func (p *Provider) RecordStatusUpdate(status domain.Status) {
	p.Metrics.StatusUpdates.WithLabelValues(string(status)).Inc()
}

// RecordAnalysis records the duration of a classification pass.
func (p *Provider) RecordAnalysis(duration time.Duration) {
	p.Metrics.AnalysisDuration.Observe(duration.Seconds())
}

// RecordEmail records the outcome of a notification delivery attempt.
func (p *Provider) RecordEmail(success bool) {
	if success {
		p.Metrics.EmailsSent.Inc()
		return
	}
	p.Metrics.EmailsFailed.Inc()
}
