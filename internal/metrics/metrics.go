// Package metrics holds the Prometheus collectors shared by the store, the service and the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "zeipilote"

// Registry is the process-wide registry exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	// StoreFallbacks counts loads that returned the default data, by reason
	// (unavailable, empty, corrupt).
	StoreFallbacks = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "fallbacks_total",
		Help:      "Loads that fell back to the default app data.",
	}, []string{"reason"})

	// StoreWrites counts full snapshot writes.
	StoreWrites = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "writes_total",
		Help:      "Snapshot writes, by result.",
	}, []string{"result"})

	// Mutations counts read-modify-write operations by name.
	Mutations = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "service",
		Name:      "mutations_total",
		Help:      "Mutation operations applied to the app data.",
	}, []string{"operation"})

	// RPCRequests counts RPC calls by procedure and status code.
	RPCRequests = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "RPC calls handled, by procedure and code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency.
	RPCDuration = promauto.With(Registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "duration_seconds",
		Help:      "RPC handling latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
