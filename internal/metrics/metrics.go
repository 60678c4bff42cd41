// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

// Package metrics exposes Prometheus instrumentation for the
// recommendation service: API latency and throughput, per-strategy
// engine timings, and catalog size.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts API requests by method, route, and
	// status code.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// APIRequestDuration observes API latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	// APIActiveRequests gauges in-flight requests.
	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// RecommendationDuration observes end-to-end engine latency per
	// mode (hybrid, personalized, similar).
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation computation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// RecommendationsReturned observes result set sizes per mode.
	RecommendationsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendations_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	// CatalogSize gauges the number of performances currently loaded.
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_performances",
			Help: "Number of performances in the loaded catalog",
		},
	)

	// RatingEvents gauges the number of loaded rating events.
	RatingEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_rating_events",
			Help: "Number of rating events available to the collaborative filter",
		},
	)

	// CacheLookups counts similarity cache lookups by result.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_cache_lookups_total",
			Help: "Similarity result cache lookups by outcome",
		},
		[]string{"result"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	APIRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records one engine run.
func RecordRecommendation(mode string, results int, duration time.Duration) {
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationsReturned.WithLabelValues(mode).Observe(float64(results))
}

// RecordCacheLookup records one similarity cache lookup.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(result).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
