package batch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
	"github.com/dd0wney/cluso-blueprint/pkg/quantum"
	"github.com/dd0wney/cluso-blueprint/pkg/sector"
	"github.com/dd0wney/cluso-blueprint/pkg/veil"
)

func testSector(id, nodeCount int) sector.Config {
	nodes := make([]fixture.Node, nodeCount)
	for i := range nodes {
		nodes[i] = fixture.Node{
			ID:       fmt.Sprintf("s%d_n%d", id, i),
			Position: geometry.Point{X: float64(i), Y: float64(id)},
			Type:     fixture.TypeGeneric,
		}
	}
	return sector.Config{ID: id, Nodes: nodes}
}

func newTestOrchestrator(t *testing.T, workers int) *Orchestrator {
	t.Helper()
	opt, err := quantum.NewOptimizer(quantum.DefaultOptions())
	if err != nil {
		t.Fatalf("NewOptimizer() error = %v", err)
	}
	return NewOrchestrator(opt, 10.0, workers, nil, nil)
}

func TestOptimizeSectorSingle(t *testing.T) {
	o := newTestOrchestrator(t, 1)

	result, err := o.OptimizeSector(Task{Sector: testSector(0, 4), Profile: veil.AllLayers})
	if err != nil {
		t.Fatalf("OptimizeSector() error = %v", err)
	}
	if result.SectorID != 0 {
		t.Errorf("SectorID = %d, want 0", result.SectorID)
	}
	if len(result.Probabilities) != 4 {
		t.Errorf("got %d probabilities, want 4", len(result.Probabilities))
	}
}

func TestOptimizeSectorsEmpty(t *testing.T) {
	o := newTestOrchestrator(t, 2)

	outcome := o.OptimizeSectors(nil)
	if len(outcome.Results) != 0 || len(outcome.Failures) != 0 {
		t.Errorf("empty batch produced results=%d failures=%d", len(outcome.Results), len(outcome.Failures))
	}
}

func TestOptimizeSectorsAllSucceed(t *testing.T) {
	o := newTestOrchestrator(t, 4)

	tasks := make([]Task, 6)
	for i := range tasks {
		tasks[i] = Task{Sector: testSector(i, 3+i), Profile: veil.AllLayers}
	}

	outcome := o.OptimizeSectors(tasks)

	if len(outcome.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", outcome.Failures)
	}
	if len(outcome.Results) != len(tasks) {
		t.Fatalf("got %d results, want %d", len(outcome.Results), len(tasks))
	}
	for i, r := range outcome.Results {
		if r.SectorID != i {
			t.Errorf("results[%d].SectorID = %d, results not sorted by sector", i, r.SectorID)
		}
	}
}

// TestOptimizeSectorsPartialFailure: a sector with an invalid extra
// context fails alone; every other sector still yields a result.
func TestOptimizeSectorsPartialFailure(t *testing.T) {
	o := newTestOrchestrator(t, 3)

	tasks := []Task{
		{Sector: testSector(0, 4), Profile: veil.AllLayers},
		{
			Sector:  testSector(1, 4),
			Profile: veil.AllLayers,
			// Preference misaligned with the node count
			Extra: &quantum.ExtraContext{Preference: []float64{1.0}},
		},
		{Sector: testSector(2, 4), Profile: veil.AllLayers},
	}

	outcome := o.OptimizeSectors(tasks)

	if len(outcome.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(outcome.Results))
	}
	if len(outcome.Failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(outcome.Failures))
	}

	failure := outcome.Failures[0]
	if failure.SectorID != 1 {
		t.Errorf("failed SectorID = %d, want 1", failure.SectorID)
	}
	if !errors.Is(failure.Err, quantum.ErrShapeMismatch) {
		t.Errorf("failure error = %v, want shape mismatch", failure.Err)
	}

	gotIDs := []int{outcome.Results[0].SectorID, outcome.Results[1].SectorID}
	if gotIDs[0] != 0 || gotIDs[1] != 2 {
		t.Errorf("result sector ids = %v, want [0 2]", gotIDs)
	}
}

// Every non-failed task produces exactly one result even when tasks far
// outnumber workers.
func TestOptimizeSectorsOneResultPerTask(t *testing.T) {
	o := newTestOrchestrator(t, 2)

	tasks := make([]Task, 20)
	for i := range tasks {
		tasks[i] = Task{Sector: testSector(i, 2), Profile: veil.AllLayers}
	}

	outcome := o.OptimizeSectors(tasks)

	if len(outcome.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", outcome.Failures)
	}
	seen := make(map[int]bool)
	for _, r := range outcome.Results {
		if seen[r.SectorID] {
			t.Errorf("sector %d reported twice", r.SectorID)
		}
		seen[r.SectorID] = true
	}
	if len(seen) != len(tasks) {
		t.Errorf("got results for %d sectors, want %d", len(seen), len(tasks))
	}
}

func TestOptimizeSectorsProfileApplied(t *testing.T) {
	o := newTestOrchestrator(t, 1)

	cfg := sector.Config{ID: 0, Nodes: []fixture.Node{
		{ID: "sock", Position: geometry.Point{X: 0, Y: 0}, Type: fixture.TypeSocket},
		{ID: "vent", Position: geometry.Point{X: 1, Y: 0}, Type: fixture.TypeVent},
	}}

	result, err := o.OptimizeSector(Task{Sector: cfg, Profile: veil.ElectricalOnly})
	if err != nil {
		t.Fatalf("OptimizeSector() error = %v", err)
	}

	if result.Probabilities["sock"] <= result.Probabilities["vent"] {
		t.Errorf("electrical profile did not favor the socket: sock=%v vent=%v",
			result.Probabilities["sock"], result.Probabilities["vent"])
	}
}
