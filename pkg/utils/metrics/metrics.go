package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "typewriters"

// Poll outcomes other than error kinds.
const (
	OutcomeUpdate   = "update"
	OutcomeNoChange = "no_change"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics owns a private registry so that several instances can coexist in tests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	pollResults     *prometheus.CounterVec
	lastSeenBuild   *prometheus.GaugeVec
	pollDuration    *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	x := &Metrics{
		registry: prometheus.NewRegistry(),

		pollResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "results_total",
			Help:      "Number of poll outcomes per target",
		}, []string{"target", "outcome"}),

		lastSeenBuild: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "last_seen_build",
			Help:      "Last seen build number per build target",
		}, []string{"target"}),

		pollDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "duration_seconds",
			Help:      "Latency distribution of a single target poll",
			Buckets:   histogramBuckets,
		}, []string{"target"}),

		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
	}

	x.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		x.pollResults,
		x.lastSeenBuild,
		x.pollDuration,
		x.requestTotal,
		x.requestDuration,
	)

	return x
}

func (x *Metrics) RecordPoll(target, outcome string, duration time.Duration) {
	if x == nil {
		return
	}
	x.pollResults.With(prometheus.Labels{"target": target, "outcome": outcome}).Inc()
	x.pollDuration.With(prometheus.Labels{"target": target}).Observe(duration.Seconds())
}

func (x *Metrics) SetLastSeenBuild(target string, build int32) {
	if x == nil {
		return
	}
	x.lastSeenBuild.With(prometheus.Labels{"target": target}).Set(float64(build))
}

func (x *Metrics) RecordRequest(method, route string, status int, duration time.Duration) {
	if x == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	x.requestTotal.With(labels).Inc()
	x.requestDuration.With(labels).Observe(duration.Seconds())
}

// Registry exposes the underlying registry, e.g. for prometheus/testutil.
func (x *Metrics) Registry() *prometheus.Registry {
	if x == nil {
		return nil
	}
	return x.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (x *Metrics) Handler() http.Handler {
	if x == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(x.registry, promhttp.HandlerOpts{Registry: x.registry})
}
