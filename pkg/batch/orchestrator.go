// Package batch fans sector optimizations out across a bounded worker
// pool and aggregates per-sector outcomes. Tasks share no mutable state:
// every sector owns its own graph and veil vector, so no locking is
// needed beyond result collection.
package batch

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/dd0wney/cluso-blueprint/pkg/logging"
	"github.com/dd0wney/cluso-blueprint/pkg/metrics"
	"github.com/dd0wney/cluso-blueprint/pkg/quantum"
	"github.com/dd0wney/cluso-blueprint/pkg/sector"
	"github.com/dd0wney/cluso-blueprint/pkg/veil"
)

// Task describes one sector optimization unit
type Task struct {
	Sector  sector.Config
	Profile veil.LayerProfile
	Extra   *quantum.ExtraContext
}

// SectorFailure records a failed sector without affecting other sectors
type SectorFailure struct {
	SectorID int
	Err      error
}

// Outcome is the aggregate result of a batch run. Partial failure is a
// first-class state: Results holds every sector that succeeded and
// Failures every sector that did not, regardless of completion order.
type Outcome struct {
	Results  []*quantum.Result
	Failures []SectorFailure
}

// Orchestrator runs sector optimization tasks in parallel
type Orchestrator struct {
	optimizer           *quantum.Optimizer
	connectionThreshold float64
	workers             int
	logger              logging.Logger
	metrics             *metrics.Registry
}

// NewOrchestrator creates an orchestrator. A non-positive worker count
// defaults to the number of CPUs; logger and registry may be nil.
func NewOrchestrator(optimizer *quantum.Optimizer, connectionThreshold float64, workers int, logger logging.Logger, registry *metrics.Registry) *Orchestrator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Orchestrator{
		optimizer:           optimizer,
		connectionThreshold: connectionThreshold,
		workers:             workers,
		logger:              logger,
		metrics:             registry,
	}
}

// OptimizeSector runs a single task synchronously: veil factors and the
// proximity graph are derived from the task's sector, then handed to the
// optimizer.
func (o *Orchestrator) OptimizeSector(task Task) (*quantum.Result, error) {
	veilFactors := veil.Factors(task.Sector.Nodes, task.Profile)
	graph := sector.BuildGraph(task.Sector, o.connectionThreshold)
	return o.optimizer.OptimizeSector(task.Sector, graph, veilFactors, task.Extra)
}

// OptimizeSectors runs all tasks across the worker pool and waits for
// every task to finish or fail before returning. One sector's failure
// never blocks or discards another sector's result.
func (o *Orchestrator) OptimizeSectors(tasks []Task) Outcome {
	outcome := Outcome{
		Results:  make([]*quantum.Result, 0, len(tasks)),
		Failures: make([]SectorFailure, 0),
	}
	if len(tasks) == 0 {
		return outcome
	}

	pool, err := NewWorkerPool(o.workers, o.logger)
	if err != nil {
		// Worker count came from config validation; fall back to serial
		pool, _ = NewWorkerPool(1, o.logger)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, task := range tasks {
		task := task
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()

			start := time.Now()
			result, err := o.OptimizeSector(task)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				outcome.Failures = append(outcome.Failures, SectorFailure{
					SectorID: task.Sector.ID,
					Err:      err,
				})
				o.recordOptimization("failed", elapsed, len(task.Sector.Nodes), 0)
				o.logger.Error("sector optimization failed",
					logging.SectorID(task.Sector.ID),
					logging.NodeCount(len(task.Sector.Nodes)),
					logging.Error(err))
				return
			}

			outcome.Results = append(outcome.Results, result)
			o.recordOptimization("ok", elapsed, len(task.Sector.Nodes), len(result.Selected))
			o.logger.Debug("sector optimized",
				logging.SectorID(task.Sector.ID),
				logging.NodeCount(len(task.Sector.Nodes)),
				logging.SelectedCount(len(result.Selected)),
				logging.Latency(elapsed))
		})
	}

	wg.Wait()
	pool.Close()

	// Completion order is unspecified; sort for stable reporting
	sort.Slice(outcome.Results, func(i, j int) bool {
		return outcome.Results[i].SectorID < outcome.Results[j].SectorID
	})
	sort.Slice(outcome.Failures, func(i, j int) bool {
		return outcome.Failures[i].SectorID < outcome.Failures[j].SectorID
	})

	return outcome
}

func (o *Orchestrator) recordOptimization(status string, elapsed time.Duration, nodes, selected int) {
	if o.metrics != nil {
		o.metrics.RecordOptimization(status, elapsed, nodes, selected)
	}
}
