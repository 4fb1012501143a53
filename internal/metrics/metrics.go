// Package metrics holds the Prometheus instruments for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal         *prometheus.CounterVec
	RequestDuration       *prometheus.HistogramVec
	AttendeesRegistered   prometheus.Counter
	AgendaSessionsAdded   prometheus.Counter
	AgendaSessionsRemoved prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
// Call it once per process.
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "conference_planner_http_requests_total",
			Help: "Total number of HTTP requests served, by method and status code",
		}, []string{"method", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "conference_planner_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		AttendeesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "conference_planner_attendees_registered_total",
			Help: "Total number of attendee registrations accepted",
		}),
		AgendaSessionsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "conference_planner_agenda_sessions_added_total",
			Help: "Total number of sessions added to personal agendas",
		}),
		AgendaSessionsRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "conference_planner_agenda_sessions_removed_total",
			Help: "Total number of sessions removed from personal agendas",
		}),
	}
}

// All increment and observe helpers tolerate a nil receiver so metrics can
// be left unset in tests.

func (m *Metrics) ObserveRequest(method string, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) IncrementAttendeesRegistered() {
	if m == nil {
		return
	}
	m.AttendeesRegistered.Inc()
}

func (m *Metrics) IncrementAgendaSessionsAdded() {
	if m == nil {
		return
	}
	m.AgendaSessionsAdded.Inc()
}

func (m *Metrics) IncrementAgendaSessionsRemoved() {
	if m == nil {
		return
	}
	m.AgendaSessionsRemoved.Inc()
}
