// Package metrics exposes prometheus instruments for the HTTP surface and
// the pricing pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics instruments inbound requests.
type HTTPMetrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keepr_http_requests_total",
			Help: "Inbound HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		Duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keepr_http_request_duration_seconds",
			Help:    "Inbound HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// PricingMetrics counts rate resolutions and their outcomes.
type PricingMetrics struct {
	QuotesTotal    prometheus.Counter
	NightsResolved prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	CapConflicts   prometheus.Counter
	RulesEvaluated prometheus.Counter
}

func NewPricingMetrics() *PricingMetrics {
	return &PricingMetrics{
		QuotesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepr_pricing_quotes_total",
			Help: "Rate quotes produced.",
		}),
		NightsResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepr_pricing_nights_resolved_total",
			Help: "Individual nights resolved through the rule engine.",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepr_pricing_cache_hits_total",
			Help: "Nightly rates served from the quote cache.",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepr_pricing_cache_misses_total",
			Help: "Nightly rates that required a fresh resolution.",
		}),
		CapConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepr_pricing_cap_conflicts_total",
			Help: "Resolutions rejected because matched rule caps were unsatisfiable.",
		}),
		RulesEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepr_pricing_rules_evaluated_total",
			Help: "Rules folded across all resolutions.",
		}),
	}
}
