/*
Package observability provides Prometheus collectors for the formflow
engine: page views, validation outcomes and persistence writes, labelled by
task and page so journeys can be monitored for drop-off points.
*/
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors. A nil *Metrics is a
// valid no-op receiver, so the engine never branches on instrumentation
// being configured.
type Metrics struct {
	pageShows          *prometheus.CounterVec
	pageSubmissions    *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	artifactWrites     prometheus.Counter
}

// NewMetrics builds and registers the collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pageShows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formflow",
			Name:      "page_shows_total",
			Help:      "Pages rendered, by task and page.",
		}, []string{"task", "page"}),
		pageSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formflow",
			Name:      "page_submissions_total",
			Help:      "Page update attempts, by task, page and outcome.",
		}, []string{"task", "page", "outcome"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formflow",
			Name:      "validation_failures_total",
			Help:      "Individual field validation failures, by task and page.",
		}, []string{"task", "page"}),
		artifactWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "formflow",
			Name:      "artifact_writes_total",
			Help:      "Successful artifact persistence writes.",
		}),
	}

	reg.MustRegister(m.pageShows, m.pageSubmissions, m.validationFailures, m.artifactWrites)
	return m
}

// PageShown records a successful show flow.
func (m *Metrics) PageShown(task, page string) {
	if m == nil {
		return
	}
	m.pageShows.WithLabelValues(task, page).Inc()
}

// PageSubmitted records an update flow outcome ("saved" or "invalid").
func (m *Metrics) PageSubmitted(task, page, outcome string) {
	if m == nil {
		return
	}
	m.pageSubmissions.WithLabelValues(task, page, outcome).Inc()
}

// ValidationFailed records the number of failing fields on a submission.
func (m *Metrics) ValidationFailed(task, page string, fields int) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(task, page).Add(float64(fields))
}

// ArtifactWritten records one persistence write.
func (m *Metrics) ArtifactWritten() {
	if m == nil {
		return
	}
	m.artifactWrites.Inc()
}
