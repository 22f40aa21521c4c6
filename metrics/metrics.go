// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/questbridge/server/models"
)

const namespace = "questbridge"

// otherLabel absorbs label values taken from request bodies that are not
// in the known sets, keeping series counts bounded.
const otherLabel = "other"

func ticketLabel(ticketType string) string {
	switch ticketType {
	case models.TicketGeneral, models.TicketVIP, models.TicketSpeaker, models.TicketSponsor:
		return ticketType
	}
	return otherLabel
}

func activityLabel(activityType string) string {
	switch activityType {
	case models.ActivityQuizGame, models.ActivityConnectDots:
		return activityType
	}
	return otherLabel
}

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	registrations   *prometheus.CounterVec
	duplicates      prometheus.Counter
	engagement      *prometheus.CounterVec
	scoreTotal      prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "participants_registered_total",
			Help:      "Successful participant registrations by ticket type.",
		}, []string{"ticket_type"}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "participants_duplicate_total",
			Help:      "Registrations rejected because the email was taken.",
		}),
		engagement: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engagement_logged_total",
			Help:      "Engagement events by activity type.",
		}, []string{"activity_type"}),
		scoreTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engagement_score_total",
			Help:      "Sum of positive scores logged.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.registrations,
		m.duplicates,
		m.engagement,
		m.scoreTotal,
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) ParticipantRegistered(ticketType string) {
	m.registrations.WithLabelValues(ticketLabel(ticketType)).Inc()
}

func (m *Metrics) DuplicateRegistration() {
	m.duplicates.Inc()
}

func (m *Metrics) EngagementLogged(activityType string, score int) {
	m.engagement.WithLabelValues(activityLabel(activityType)).Inc()
	// counters cannot go down
	if score > 0 {
		m.scoreTotal.Add(float64(score))
	}
}
