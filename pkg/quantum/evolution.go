package quantum

import (
	"math"
	"math/cmplx"
)

// simulateWalk evolves a uniform superposition under the Hamiltonian for
// the configured number of discrete steps and returns the final amplitude
// vector. The evolution operator exp(-i*H*dt) is computed once; because H
// is real symmetric the operator is unitary up to floating-point error,
// and the state is renormalized after every application to stop drift
// from accumulating.
func (o *Optimizer) simulateWalk(hamiltonian [][]float64, sectorID int) ([]complex128, error) {
	n := len(hamiltonian)

	psi := make([]complex128, n)
	amplitude := complex(1.0/math.Sqrt(float64(n)), 0)
	for i := range psi {
		psi[i] = amplitude
	}

	// Generator A = -i * H * dt
	generator := newCMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			generator.set(i, j, complex(0, -hamiltonian[i][j]*o.opts.Dt))
		}
	}
	operator := expm(generator)

	for step := 0; step < o.opts.TimeSteps; step++ {
		psi = operator.matVec(psi)

		norm := vectorNorm(psi)
		if norm == 0 || math.IsNaN(norm) {
			return nil, sectorError("evolve", sectorID, ErrNumericalFailure, "")
		}

		inv := complex(1.0/norm, 0)
		for i := range psi {
			psi[i] *= inv
		}
	}

	return psi, nil
}

// vectorNorm returns the L2 norm of a complex vector
func vectorNorm(v []complex128) float64 {
	sum := 0.0
	for _, c := range v {
		abs := cmplx.Abs(c)
		sum += abs * abs
	}
	return math.Sqrt(sum)
}
