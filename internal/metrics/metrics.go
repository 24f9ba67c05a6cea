// Package metrics exposes Prometheus counters for lookups and HTTP traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mcskin"

// Recorder counts Mojang lookups and resolutions and serves them in the
// Prometheus exposition format. It satisfies mojang.Recorder.
type Recorder struct {
	registry *prometheus.Registry

	lookups     *prometheus.CounterVec
	resolutions *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates a Recorder backed by its own registry.
// Go runtime and process collectors are registered when withRuntime is set.
func New(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mojang_lookups_total",
				Help:      "Total number of Mojang API requests by endpoint and result.",
			},
			[]string{"endpoint", "result"},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Total number of username resolutions by result.",
			},
			[]string{"result"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	r.registry.MustRegister(
		r.lookups,
		r.resolutions,
		r.httpRequests,
		r.httpDuration,
	)

	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return r
}

// ObserveLookup counts one request against a Mojang endpoint.
func (r *Recorder) ObserveLookup(endpoint, result string) {
	r.lookups.WithLabelValues(endpoint, result).Inc()
}

// ObserveResolution counts one finished username resolution.
func (r *Recorder) ObserveResolution(result string) {
	r.resolutions.WithLabelValues(result).Inc()
}

// Handler serves the registry for scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
