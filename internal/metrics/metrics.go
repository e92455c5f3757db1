// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes Prometheus instrumentation for the request
// pipeline. All methods are safe on a nil *Metrics, which disables
// instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "httpcore"

// Metrics holds the pipeline collectors and the registry they live in.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	preflightsTotal *prometheus.CounterVec
	failuresTotal   *prometheus.CounterVec
	publishFailures prometheus.Counter
	auditRecords    *prometheus.CounterVec
	policyReloads   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors on a fresh registry. Go runtime and
// process collectors are registered alongside.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of handled HTTP requests",
			},
			[]string{"method", "group", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "group"},
		),
		preflightsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cors_preflights_total",
				Help:      "Total number of answered CORS preflight requests",
			},
			[]string{"group"},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Total number of unhandled failures converted into 500 responses",
			},
			[]string{"kind"},
		),
		publishFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failure_publish_errors_total",
				Help:      "Total number of failures that could not be published",
			},
		),
		auditRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audit_records_total",
				Help:      "Total number of written access records by severity",
			},
			[]string{"severity"},
		),
		policyReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cors_policy_reloads_total",
				Help:      "Total number of CORS policy file reloads by result",
			},
			[]string{"result"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.preflightsTotal,
		m.failuresTotal,
		m.publishFailures,
		m.auditRecords,
		m.policyReloads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records a completed request.
func (m *Metrics) ObserveRequest(method, group string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, group, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, group).Observe(d.Seconds())
}

// IncPreflight counts an answered preflight request.
func (m *Metrics) IncPreflight(group string) {
	if m == nil {
		return
	}
	m.preflightsTotal.WithLabelValues(group).Inc()
}

// IncFailure counts an unhandled failure of the given kind.
func (m *Metrics) IncFailure(kind string) {
	if m == nil {
		return
	}
	m.failuresTotal.WithLabelValues(kind).Inc()
}

// IncPublishFailure counts a failure that could not be published.
func (m *Metrics) IncPublishFailure() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

// IncAuditRecord counts a written access record.
func (m *Metrics) IncAuditRecord(severity string) {
	if m == nil {
		return
	}
	m.auditRecords.WithLabelValues(severity).Inc()
}

// IncPolicyReload counts a policy file reload attempt.
func (m *Metrics) IncPolicyReload(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.policyReloads.WithLabelValues(result).Inc()
}
