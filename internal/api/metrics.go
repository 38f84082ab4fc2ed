package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "algoviz_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "algoviz_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	tracesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "algoviz_traces_generated_total",
		Help: "Traces generated by algorithm",
	}, []string{"algorithm"})

	traceSnapshots = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "algoviz_trace_snapshots",
		Help:    "Snapshots per generated trace",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "algoviz_playback_sessions_active",
		Help: "Open playback WebSocket sessions",
	})

	playbackEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "algoviz_playback_events_total",
		Help: "Events written to playback sockets by type",
	}, []string{"type"})
)
