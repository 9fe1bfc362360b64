// Package quantum implements the sector optimizer: a deterministic
// quantum-walk-style simulation over a sector's weighted compatibility
// graph. It assembles a Hamiltonian from connectivity, harmony, and
// visibility terms, evolves a uniform superposition under it, and selects
// the nodes with the highest resulting probability.
package quantum

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/dd0wney/cluso-blueprint/pkg/sector"
	"github.com/dd0wney/cluso-blueprint/pkg/validation"
)

// Options configures the sector optimizer
type Options struct {
	TimeSteps        int     `yaml:"time_steps"`
	Dt               float64 `yaml:"dt"`
	LaplacianWeight  float64 `yaml:"laplacian_weight"`
	HarmonyWeight    float64 `yaml:"harmony_weight"`
	VeilWeight       float64 `yaml:"veil_weight"`
	PreferenceWeight float64 `yaml:"preference_weight"`
	SelectionRatio   float64 `yaml:"selection_ratio"`
}

// DefaultOptions returns the default optimizer configuration
func DefaultOptions() Options {
	return Options{
		TimeSteps:        48,
		Dt:               0.05,
		LaplacianWeight:  1.0,
		HarmonyWeight:    1.0,
		VeilWeight:       0.35,
		PreferenceWeight: 0.5,
		SelectionRatio:   0.25,
	}
}

// Validate checks that all optimizer options are within their legal ranges
func (o Options) Validate() error {
	return validation.NewConfigValidator("Options").
		Positive("TimeSteps", o.TimeSteps).
		PositiveFloat("Dt", o.Dt).
		UnitRatio("SelectionRatio", o.SelectionRatio).
		Validate()
}

// Result is the optimization outcome for a single sector. Probabilities
// sum to 1 within numerical tolerance; Amplitudes is the raw final
// wavefunction, ordered like the sector's node list, kept for diagnostics.
type Result struct {
	SectorID      int
	Probabilities map[string]float64
	Selected      []string
	Amplitudes    []complex128
}

// Optimizer runs quantum-walk optimization over sector graphs. It holds
// only immutable configuration, so a single instance is safe to reuse
// across concurrent sector optimizations.
type Optimizer struct {
	opts Options
}

// NewOptimizer creates an optimizer after validating the options
func NewOptimizer(opts Options) (*Optimizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{opts: opts}, nil
}

// Options returns the optimizer configuration
func (o *Optimizer) Options() Options {
	return o.opts
}

// OptimizeSector runs the walk for one sector and returns its probability
// distribution, selected node ids, and raw amplitudes. Validation
// failures, out-of-range harmony indices, and numerical collapse are
// surfaced as errors and never silently corrected. The computation is
// fully deterministic.
func (o *Optimizer) OptimizeSector(cfg sector.Config, graph sector.Graph, veilFactors []float64, extra *ExtraContext) (*Result, error) {
	if err := o.validateInputs(cfg, graph, veilFactors, extra); err != nil {
		return nil, err
	}

	hamiltonian := o.buildHamiltonian(graph.Adjacency, graph.Harmonies, veilFactors, extra)

	psi, err := o.simulateWalk(hamiltonian, cfg.ID)
	if err != nil {
		return nil, err
	}

	probabilities := amplitudeProbabilities(psi)

	nodeProbabilities := make(map[string]float64, len(cfg.Nodes))
	for i, node := range cfg.Nodes {
		nodeProbabilities[node.ID] = probabilities[i]
	}

	return &Result{
		SectorID:      cfg.ID,
		Probabilities: nodeProbabilities,
		Selected:      o.selectNodes(cfg, probabilities),
		Amplitudes:    psi,
	}, nil
}

// validateInputs enforces the optimizer preconditions: non-empty sector,
// square adjacency matching the node count, aligned veil vector, aligned
// extra-context shapes, and in-range harmony indices.
func (o *Optimizer) validateInputs(cfg sector.Config, graph sector.Graph, veilFactors []float64, extra *ExtraContext) error {
	n := len(cfg.Nodes)
	if n == 0 {
		return sectorError("optimize", cfg.ID, ErrEmptySector, "")
	}

	if len(graph.Adjacency) != n {
		return sectorError("optimize", cfg.ID, ErrShapeMismatch, "adjacency must be square with size equal to nodes")
	}
	for _, row := range graph.Adjacency {
		if len(row) != n {
			return sectorError("optimize", cfg.ID, ErrShapeMismatch, "adjacency must be square with size equal to nodes")
		}
	}

	if len(veilFactors) != n {
		return sectorError("optimize", cfg.ID, ErrShapeMismatch, "veil factors length must match node count")
	}

	for pair := range graph.Harmonies {
		if pair[0] < 0 || pair[0] >= n || pair[1] < 0 || pair[1] >= n {
			return sectorError("optimize", cfg.ID, ErrHarmonyIndex, "")
		}
	}

	if extra != nil {
		if extra.Preference != nil && len(extra.Preference) != n {
			return sectorError("optimize", cfg.ID, ErrShapeMismatch, "preference vector must align with number of nodes in sector")
		}
		if extra.Penalty != nil {
			if len(extra.Penalty) != n {
				return sectorError("optimize", cfg.ID, ErrShapeMismatch, "penalty matrix must match adjacency size")
			}
			for _, row := range extra.Penalty {
				if len(row) != n {
					return sectorError("optimize", cfg.ID, ErrShapeMismatch, "penalty matrix must match adjacency size")
				}
			}
		}
	}

	return nil
}

// amplitudeProbabilities converts amplitudes to a probability vector
// renormalized to sum exactly to 1, guarding against residual
// floating-point drift from the evolution.
func amplitudeProbabilities(psi []complex128) []float64 {
	probabilities := make([]float64, len(psi))
	total := 0.0
	for i, amp := range psi {
		abs := cmplx.Abs(amp)
		probabilities[i] = abs * abs
		total += probabilities[i]
	}
	if total > 0 {
		for i := range probabilities {
			probabilities[i] /= total
		}
	}
	return probabilities
}

// selectNodes picks every node whose probability reaches the c-th largest
// value, where c = max(1, ceil(n * SelectionRatio)). Ties at the cutoff
// are never broken arbitrarily, so the selected set may exceed c.
func (o *Optimizer) selectNodes(cfg sector.Config, probabilities []float64) []string {
	n := len(probabilities)

	count := int(math.Ceil(float64(n) * o.opts.SelectionRatio))
	if count < 1 {
		count = 1
	}
	if count > n {
		count = n
	}

	ranked := make([]float64, n)
	copy(ranked, probabilities)
	sort.Sort(sort.Reverse(sort.Float64Slice(ranked)))
	threshold := ranked[count-1]

	selected := make([]string, 0, count)
	for i, node := range cfg.Nodes {
		if probabilities[i] >= threshold {
			selected = append(selected, node.ID)
		}
	}
	return selected
}
