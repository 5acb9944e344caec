package profiling

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector of the process. It is separate from the
// prometheus default registry so tests can construct worlds freely.
var Registry = prometheus.NewRegistry()

var (
	opDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "worldcraft",
		Name:       "op_duration_seconds",
		Help:       "Duration of tracked operations.",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"op"})

	// ChunkBuilds counts full chunk rebuilds.
	ChunkBuilds = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "worldcraft",
		Subsystem: "mesh",
		Name:      "chunk_builds_total",
		Help:      "Full chunk mesh builds.",
	})

	// Patches counts incremental updates by transition kind.
	Patches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "worldcraft",
		Subsystem: "mesh",
		Name:      "patches_total",
		Help:      "Incremental mesh patches by transition.",
	}, []string{"kind"})

	// VerticesEmitted counts vertices appended to any buffer.
	VerticesEmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "worldcraft",
		Subsystem: "mesh",
		Name:      "vertices_emitted_total",
		Help:      "Vertices appended to chunk buffers.",
	})

	// VerticesDestroyed counts vertices removed by block destruction.
	VerticesDestroyed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "worldcraft",
		Subsystem: "mesh",
		Name:      "vertices_destroyed_total",
		Help:      "Vertices removed from chunk buffers.",
	})

	// VerifyFailures counts patches that left a buffer inconsistent.
	VerifyFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "worldcraft",
		Subsystem: "mesh",
		Name:      "verify_failures_total",
		Help:      "Patches that failed buffer validation and forced a rebuild.",
	})
)

func init() {
	Registry.MustRegister(opDuration, ChunkBuilds, Patches, VerticesEmitted, VerticesDestroyed, VerifyFailures)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
