// Package pipeline wires the blueprint optimization stages end to end:
// inbound node validation, grid partitioning, layer veiling, parallel
// sector optimization, and result export.
package pipeline

import (
	"github.com/dd0wney/cluso-blueprint/pkg/batch"
	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
	"github.com/dd0wney/cluso-blueprint/pkg/logging"
	"github.com/dd0wney/cluso-blueprint/pkg/metrics"
	"github.com/dd0wney/cluso-blueprint/pkg/quantum"
	"github.com/dd0wney/cluso-blueprint/pkg/sector"
	"github.com/dd0wney/cluso-blueprint/pkg/veil"
)

// Pipeline runs the full optimization flow for a blueprint's node list
type Pipeline struct {
	cfg          Config
	logger       logging.Logger
	registry     *metrics.Registry
	orchestrator *batch.Orchestrator
}

// Report is the aggregate outcome of one pipeline run
type Report struct {
	Results   []*quantum.Result
	Failures  []batch.SectorFailure
	Partition sector.Stats
}

// New builds a pipeline from a validated configuration. Logger and
// registry may be nil.
func New(cfg Config, logger logging.Logger, registry *metrics.Registry) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	optimizer, err := quantum.NewOptimizer(cfg.Optimizer)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		orchestrator: batch.NewOrchestrator(
			optimizer,
			cfg.Partitioner.ConnectionThreshold,
			cfg.Workers,
			logger,
			registry,
		),
	}, nil
}

// Run validates the inbound nodes, partitions them into sectors, and
// optimizes every kept sector in parallel under the given layer profile.
// Sector failures are reported in the Report, not returned as an error;
// only inbound validation fails the run as a whole.
func (p *Pipeline) Run(nodes []fixture.Node, profile veil.LayerProfile) (*Report, error) {
	if err := fixture.ValidateNodes(nodes); err != nil {
		return nil, err
	}

	timer := logging.StartTimer(p.logger, "pipeline run complete",
		logging.NodeCount(len(nodes)),
		logging.Profile(profile.String()))

	sectors, stats := sector.CreateSectors(nodes, p.cfg.Partitioner)
	if p.registry != nil {
		p.registry.RecordPartition(stats.KeptSectors, stats.DroppedSectors, stats.DroppedNodes)
	}
	if stats.DroppedNodes > 0 {
		p.logger.Warn("over-capacity cells dropped",
			logging.Int("dropped_sectors", stats.DroppedSectors),
			logging.DroppedNodes(stats.DroppedNodes))
	}

	tasks := make([]batch.Task, len(sectors))
	for i, s := range sectors {
		tasks[i] = batch.Task{Sector: s, Profile: profile}
	}

	outcome := p.orchestrator.OptimizeSectors(tasks)

	timer.End()

	return &Report{
		Results:   outcome.Results,
		Failures:  outcome.Failures,
		Partition: stats,
	}, nil
}
