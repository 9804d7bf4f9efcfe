// Package metrics exposes Prometheus collectors for the scraper.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	fetchRetriesTotal          prometheus.Counter
	topicsTotal                *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors. It is safe to call
// multiple times; the recording helpers are no-ops until it has run.
func Init() {
	once.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hansard_http_requests_total",
				Help: "Total number of Hansard API requests, labeled by endpoint and code.",
			},
			[]string{"endpoint", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hansard_http_request_duration_seconds",
				Help:    "Histogram of Hansard API request latencies, labeled by endpoint.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"endpoint"},
		)

		fetchRetriesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "hansard_fetch_retries_total",
				Help: "Total number of fragment fetch retries after retryable statuses.",
			},
		)

		topicsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hansard_topics_total",
				Help: "Total number of topics processed, labeled by result.",
			},
			[]string{"result"},
		)
	})
}

// EndpointLabel folds an API URL into a low-cardinality endpoint label.
// Document ids never leak into label values.
func EndpointLabel(rawURL string) string {
	switch {
	case strings.Contains(rawURL, "/tableofcontentsbydate/"):
		return "toc"
	case strings.Contains(rawURL, "/fragment/"):
		return "fragment"
	default:
		return "other"
	}
}

// ObserveRequest records one completed API exchange.
func ObserveRequest(rawURL string, code int, duration time.Duration) {
	if httpRequestsTotal == nil {
		return
	}
	endpoint := EndpointLabel(rawURL)
	httpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// IncFetchRetry counts one backoff retry.
func IncFetchRetry() {
	if fetchRetriesTotal == nil {
		return
	}
	fetchRetriesTotal.Inc()
}

// Topic fan-out results.
const (
	TopicFetched = "fetched"
	TopicSkipped = "skipped"
)

// ObserveTopic counts one finished topic by result.
func ObserveTopic(result string) {
	if topicsTotal == nil {
		return
	}
	topicsTotal.WithLabelValues(result).Inc()
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
