package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ecomart"

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request latencies by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter",
	})

	searchQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_queries_total",
		Help:      "Total number of searches by cache outcome",
	}, []string{"cache"})
	alternativesServed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alternatives_served_total",
		Help:      "Total number of alternative candidates returned",
	})
	biometricOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "biometric_outcomes_total",
		Help:      "Typing-rhythm submissions by outcome",
	}, []string{"outcome"})
	receiptsMinted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "receipts_minted_total",
		Help:      "Synthetic receipts by result",
	}, []string{"result"})
	catalogProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_products",
		Help:      "Number of products in the loaded catalog",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, rateLimited,
			searchQueries, alternativesServed, biometricOutcomes, receiptsMinted, catalogProducts)
	})
}

// HTTP helpers
func ObserveRequest(route, method, status string, d time.Duration) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
func IncRateLimited() { rateLimited.Inc() }

// Domain helpers
func IncSearch(cacheOutcome string)      { searchQueries.WithLabelValues(cacheOutcome).Inc() }
func AddAlternativesServed(n int)        { alternativesServed.Add(float64(n)) }
func IncBiometricOutcome(outcome string) { biometricOutcomes.WithLabelValues(outcome).Inc() }
func IncReceiptMinted(result string)     { receiptsMinted.WithLabelValues(result).Inc() }
func SetCatalogProducts(n int)           { catalogProducts.Set(float64(n)) }

// RequestCounter exposes the request counter for assertions in tests of other packages
func RequestCounter() *prometheus.CounterVec { return httpRequests }

// RateLimitedCounter exposes the rate limit rejection counter
func RateLimitedCounter() prometheus.Counter { return rateLimited }
