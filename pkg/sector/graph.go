package sector

import (
	"github.com/dd0wney/cluso-blueprint/pkg/fixture"
	"github.com/dd0wney/cluso-blueprint/pkg/geometry"
)

// Graph is a sector's proximity graph: a symmetric 0/1 adjacency matrix
// plus pairwise harmony weights keyed by unordered index pairs (i < j).
// Only nonzero harmonies are stored.
type Graph struct {
	Adjacency [][]float64
	Harmonies map[[2]int]float64
}

// BuildGraph constructs the proximity graph for a sector. Two nodes are
// adjacent iff their Euclidean distance is strictly below the connection
// threshold. Harmony is evaluated only for adjacent pairs.
func BuildGraph(cfg Config, connectionThreshold float64) Graph {
	n := len(cfg.Nodes)

	adjacency := make([][]float64, n)
	for i := range adjacency {
		adjacency[i] = make([]float64, n)
	}
	harmonies := make(map[[2]int]float64)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			distance := geometry.Distance(cfg.Nodes[i].Position, cfg.Nodes[j].Position)
			if distance >= connectionThreshold {
				continue
			}

			adjacency[i][j] = 1
			adjacency[j][i] = 1

			if h := Harmony(cfg.Nodes[i].Type, cfg.Nodes[j].Type, distance); h != 0 {
				harmonies[[2]int{i, j}] = h
			}
		}
	}

	return Graph{Adjacency: adjacency, Harmonies: harmonies}
}

// Harmony returns the signed compatibility weight between two fixture
// types at the given distance. Negative values encode attraction (the
// pair is favored for joint retention); zero means no coupling. The
// function is symmetric in its type arguments.
func Harmony(a, b fixture.FixtureType, distance float64) float64 {
	switch {
	case pairMatches(a, b, fixture.TypeSocket, fixture.TypeSwitch):
		return -0.5 / (1 + 0.1*distance)
	case pairMatches(a, b, fixture.TypeVent, fixture.TypeDuct):
		return -0.8 / (1 + 0.1*distance)
	case a == fixture.TypeBeam && b == fixture.TypeBeam:
		return -0.3 / (1 + 0.1*distance)
	case distance < 3.0:
		return -0.2
	default:
		return 0
	}
}

// pairMatches tests an unordered type pair
func pairMatches(a, b, want1, want2 fixture.FixtureType) bool {
	return (a == want1 && b == want2) || (a == want2 && b == want1)
}
