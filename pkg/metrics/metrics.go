// Package metrics exposes Prometheus instrumentation for the blueprint
// optimization pipeline. A Registry is constructed explicitly by the
// pipeline owner and passed down; there is no hidden global instance.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the optimization pipeline
type Registry struct {
	// Partitioning
	SectorsKeptTotal    prometheus.Counter
	SectorsDroppedTotal prometheus.Counter
	NodesDroppedTotal   prometheus.Counter

	// Optimization
	SectorsOptimizedTotal      *prometheus.CounterVec
	SectorOptimizationDuration prometheus.Histogram
	SectorNodeCount            prometheus.Histogram
	NodesSelectedTotal         prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		SectorsKeptTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blueprint_sectors_kept_total",
			Help: "Number of sectors emitted by the partitioner",
		}),
		SectorsDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blueprint_sectors_dropped_total",
			Help: "Number of grid cells dropped for exceeding node capacity",
		}),
		NodesDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blueprint_nodes_dropped_total",
			Help: "Number of nodes lost to over-capacity cells",
		}),
		SectorsOptimizedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blueprint_sectors_optimized_total",
			Help: "Number of sector optimizations by outcome",
		}, []string{"status"}),
		SectorOptimizationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blueprint_sector_optimization_duration_seconds",
			Help:    "Wall time of a single sector optimization",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		SectorNodeCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blueprint_sector_node_count",
			Help:    "Node count of optimized sectors",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11),
		}),
		NodesSelectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blueprint_nodes_selected_total",
			Help: "Number of nodes selected across all sectors",
		}),
	}

	reg.MustRegister(
		r.SectorsKeptTotal,
		r.SectorsDroppedTotal,
		r.NodesDroppedTotal,
		r.SectorsOptimizedTotal,
		r.SectorOptimizationDuration,
		r.SectorNodeCount,
		r.NodesSelectedTotal,
	)

	return r
}

// RecordPartition records partitioning outcomes
func (r *Registry) RecordPartition(keptSectors, droppedSectors, droppedNodes int) {
	r.SectorsKeptTotal.Add(float64(keptSectors))
	r.SectorsDroppedTotal.Add(float64(droppedSectors))
	r.NodesDroppedTotal.Add(float64(droppedNodes))
}

// RecordOptimization records one sector optimization attempt
func (r *Registry) RecordOptimization(status string, duration time.Duration, nodeCount, selected int) {
	r.SectorsOptimizedTotal.WithLabelValues(status).Inc()
	r.SectorOptimizationDuration.Observe(duration.Seconds())
	r.SectorNodeCount.Observe(float64(nodeCount))
	if selected > 0 {
		r.NodesSelectedTotal.Add(float64(selected))
	}
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
