package sector

import (
	"math"
	"testing"

	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
)

func typedNode(id string, x, y float64, ft fixture.FixtureType) fixture.Node {
	return fixture.Node{ID: id, Position: geometry.Point{X: x, Y: y}, Type: ft}
}

func TestBuildGraphAdjacency(t *testing.T) {
	cfg := Config{Nodes: []fixture.Node{
		typedNode("a", 0, 0, fixture.TypeGeneric),
		typedNode("b", 5, 0, fixture.TypeGeneric),
		typedNode("c", 50, 0, fixture.TypeGeneric),
	}}

	graph := BuildGraph(cfg, 10.0)

	if graph.Adjacency[0][1] != 1 || graph.Adjacency[1][0] != 1 {
		t.Error("nodes within threshold not adjacent")
	}
	if graph.Adjacency[0][2] != 0 || graph.Adjacency[1][2] != 0 {
		t.Error("nodes beyond threshold wrongly adjacent")
	}
	for i := range graph.Adjacency {
		if graph.Adjacency[i][i] != 0 {
			t.Errorf("self-loop at node %d", i)
		}
	}
}

// TestBuildGraphThresholdStrict: distance exactly at the threshold is not
// an edge.
func TestBuildGraphThresholdStrict(t *testing.T) {
	cfg := Config{Nodes: []fixture.Node{
		typedNode("a", 0, 0, fixture.TypeGeneric),
		typedNode("b", 10, 0, fixture.TypeGeneric),
	}}

	graph := BuildGraph(cfg, 10.0)
	if graph.Adjacency[0][1] != 0 {
		t.Error("edge created at exactly the connection threshold")
	}
}

func TestBuildGraphSymmetric(t *testing.T) {
	cfg := Config{Nodes: []fixture.Node{
		typedNode("a", 0, 0, fixture.TypeSocket),
		typedNode("b", 2, 1, fixture.TypeSwitch),
		typedNode("c", 4, 3, fixture.TypeVent),
		typedNode("d", 7, 2, fixture.TypeDuct),
	}}

	graph := BuildGraph(cfg, 10.0)
	n := len(cfg.Nodes)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if graph.Adjacency[i][j] != graph.Adjacency[j][i] {
				t.Errorf("adjacency asymmetric at (%d,%d)", i, j)
			}
		}
	}

	for pair := range graph.Harmonies {
		if pair[0] >= pair[1] {
			t.Errorf("harmony key %v not stored with i < j", pair)
		}
		if graph.Adjacency[pair[0]][pair[1]] != 1 {
			t.Errorf("harmony %v stored for non-adjacent pair", pair)
		}
	}
}

func TestHarmony(t *testing.T) {
	tests := []struct {
		name     string
		a, b     fixture.FixtureType
		distance float64
		want     float64
	}{
		{"socket switch", fixture.TypeSocket, fixture.TypeSwitch, 5.0, -0.5 / 1.5},
		{"vent duct", fixture.TypeVent, fixture.TypeDuct, 5.0, -0.8 / 1.5},
		{"beam pair", fixture.TypeBeam, fixture.TypeBeam, 5.0, -0.3 / 1.5},
		{"unrelated close", fixture.TypeLight, fixture.TypePipe, 2.0, -0.2},
		{"unrelated far", fixture.TypeLight, fixture.TypePipe, 3.0, 0},
		{"generic far", fixture.TypeGeneric, fixture.TypeGeneric, 8.0, 0},
		{"socket socket close", fixture.TypeSocket, fixture.TypeSocket, 1.0, -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Harmony(tt.a, tt.b, tt.distance)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Harmony(%s, %s, %v) = %v, want %v", tt.a, tt.b, tt.distance, got, tt.want)
			}
		})
	}
}

// TestHarmonySymmetric: harmony does not depend on argument order
func TestHarmonySymmetric(t *testing.T) {
	pairs := [][2]fixture.FixtureType{
		{fixture.TypeSocket, fixture.TypeSwitch},
		{fixture.TypeVent, fixture.TypeDuct},
		{fixture.TypeBeam, fixture.TypeBeam},
		{fixture.TypeLight, fixture.TypePipe},
		{fixture.TypeSocket, fixture.TypeVent},
	}
	distances := []float64{0.5, 2.9, 3.0, 9.0}

	for _, pair := range pairs {
		for _, d := range distances {
			forward := Harmony(pair[0], pair[1], d)
			reverse := Harmony(pair[1], pair[0], d)
			if forward != reverse {
				t.Errorf("Harmony(%s, %s, %v) = %v but reversed = %v",
					pair[0], pair[1], d, forward, reverse)
			}
		}
	}
}

// TestHarmonyDistanceDecay: matched pairs couple more weakly as they move
// apart, but the sign never flips.
func TestHarmonyDistanceDecay(t *testing.T) {
	near := Harmony(fixture.TypeSocket, fixture.TypeSwitch, 1.0)
	far := Harmony(fixture.TypeSocket, fixture.TypeSwitch, 9.0)

	if near >= 0 || far >= 0 {
		t.Fatalf("matched pair harmony not attractive: near=%v far=%v", near, far)
	}
	if math.Abs(far) >= math.Abs(near) {
		t.Errorf("harmony magnitude did not decay with distance: near=%v far=%v", near, far)
	}
}

func TestBuildGraphEmptySector(t *testing.T) {
	graph := BuildGraph(Config{}, 10.0)
	if len(graph.Adjacency) != 0 {
		t.Errorf("empty sector produced %d adjacency rows", len(graph.Adjacency))
	}
	if len(graph.Harmonies) != 0 {
		t.Errorf("empty sector produced %d harmonies", len(graph.Harmonies))
	}
}
