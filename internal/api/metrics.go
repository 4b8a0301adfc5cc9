package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// stepsTotal counts computed steps by algorithm and outcome
	stepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slidewin_steps_total",
		Help: "Window steps computed by algorithm and outcome",
	}, []string{"algorithm", "outcome"})

	// codegenTotal counts code generation requests by language and outcome
	codegenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slidewin_codegen_total",
		Help: "Code generation requests by language and outcome",
	}, []string{"language", "outcome"})

	// scanSessions tracks active scan sessions
	scanSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slidewin_scan_sessions",
		Help: "Active scan sessions",
	})

	// requestDuration tracks API latency
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slidewin_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
	}, []string{"method", "route", "status"})
)
