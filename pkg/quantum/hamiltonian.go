package quantum

// ExtraContext carries optional caller-supplied terms for the Hamiltonian.
// Preference biases named nodes toward selection (higher preference means
// lower energy); Penalty is an arbitrary matrix added unweighted. Both are
// shape-checked strictly against the sector's node count.
type ExtraContext struct {
	Preference []float64
	Penalty    [][]float64
}

// buildHamiltonian assembles the real symmetric matrix that generates the
// walk. Terms, in order: graph Laplacian (degree minus adjacency, rewards
// connectivity), mirrored harmony couplings, visibility penalty on the
// diagonal, optional preference and penalty terms.
func (o *Optimizer) buildHamiltonian(adjacency [][]float64, harmonies map[[2]int]float64, veil []float64, extra *ExtraContext) [][]float64 {
	n := len(adjacency)

	h := make([][]float64, n)
	for i := range h {
		h[i] = make([]float64, n)
	}

	// Laplacian term: D - A
	for i := 0; i < n; i++ {
		degree := 0.0
		for j := 0; j < n; j++ {
			degree += adjacency[i][j]
			h[i][j] -= o.opts.LaplacianWeight * adjacency[i][j]
		}
		h[i][i] += o.opts.LaplacianWeight * degree
	}

	// Harmony term, mirrored across the diagonal
	for pair, value := range harmonies {
		i, j := pair[0], pair[1]
		h[i][j] += o.opts.HarmonyWeight * value
		h[j][i] += o.opts.HarmonyWeight * value
	}

	// Veil term: low visibility raises a node's effective energy
	for k := 0; k < n; k++ {
		h[k][k] += o.opts.VeilWeight * (1.0 - clamp01(veil[k]))
	}

	if extra != nil {
		if extra.Preference != nil {
			for k := 0; k < n; k++ {
				h[k][k] -= o.opts.PreferenceWeight * extra.Preference[k]
			}
		}
		if extra.Penalty != nil {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					h[i][j] += extra.Penalty[i][j]
				}
			}
		}
	}

	return h
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
