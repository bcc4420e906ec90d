package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"status", "route"})
	HttpRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests forwarded upstream, by binding and upstream status (0 for transport failures)",
	}, []string{"binding", "status"})
	UpstreamRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of upstream requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"binding"})
	FallbackRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fallback_rejections_total",
		Help: "Requests that matched no route and resolved no credential",
	})
	LlmTokens = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_tokens",
		Help:    "Number of LLM tokens per completion",
		Buckets: prometheus.LinearBuckets(0, 50, 20),
	}, []string{"route"})
	LlmTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Total LLM tokens reported by the upstream, by kind (prompt or completion)",
	}, []string{"route", "kind"})
	UsageJobsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "usage_jobs_dropped_total",
		Help: "Usage extraction jobs dropped because the queue was full",
	})
)
