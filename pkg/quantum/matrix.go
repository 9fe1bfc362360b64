package quantum

import (
	"math"
	"math/cmplx"
)

// cmatrix is a dense square complex matrix in row-major layout. It exists
// to support the evolution-operator computation; sector node counts are
// bounded by the partitioner capacity, so dense storage is acceptable.
type cmatrix struct {
	n    int
	data []complex128
}

func newCMatrix(n int) *cmatrix {
	return &cmatrix{n: n, data: make([]complex128, n*n)}
}

func identityC(n int) *cmatrix {
	m := newCMatrix(n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

func (m *cmatrix) at(i, j int) complex128 {
	return m.data[i*m.n+j]
}

func (m *cmatrix) set(i, j int, v complex128) {
	m.data[i*m.n+j] = v
}

// scaled returns a new matrix with every entry multiplied by s
func (m *cmatrix) scaled(s complex128) *cmatrix {
	out := newCMatrix(m.n)
	for i, v := range m.data {
		out.data[i] = v * s
	}
	return out
}

// add returns m + other
func (m *cmatrix) add(other *cmatrix) *cmatrix {
	out := newCMatrix(m.n)
	for i := range m.data {
		out.data[i] = m.data[i] + other.data[i]
	}
	return out
}

// mul returns the matrix product m * other
func (m *cmatrix) mul(other *cmatrix) *cmatrix {
	n := m.n
	out := newCMatrix(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := m.data[i*n+k]
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out.data[i*n+j] += a * other.data[k*n+j]
			}
		}
	}
	return out
}

// matVec returns the matrix-vector product m * v
func (m *cmatrix) matVec(v []complex128) []complex128 {
	n := m.n
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		var sum complex128
		row := m.data[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			sum += row[j] * v[j]
		}
		out[i] = sum
	}
	return out
}

// infNorm returns the infinity norm (maximum absolute row sum)
func (m *cmatrix) infNorm() float64 {
	n := m.n
	maxSum := 0.0
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += cmplx.Abs(m.data[i*n+j])
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	return maxSum
}

const (
	// maxSquarings caps the scaling exponent in expm
	maxSquarings = 32
	// maxTaylorTerms caps the series length in expm
	maxTaylorTerms = 40
	// taylorTolerance terminates the series once terms stop contributing
	taylorTolerance = 1e-16
)

// expm computes the matrix exponential of a by scaling and squaring with
// a Taylor series: a is scaled down until its norm is small, the series
// sum a^k / k! is evaluated to convergence, and the scaling is undone by
// repeated squaring.
func expm(a *cmatrix) *cmatrix {
	norm := a.infNorm()
	squarings := 0
	for norm > 0.5 && squarings < maxSquarings {
		norm /= 2
		squarings++
	}

	scaled := a.scaled(complex(1/math.Pow(2, float64(squarings)), 0))

	result := identityC(a.n)
	term := identityC(a.n)
	for k := 1; k <= maxTaylorTerms; k++ {
		term = term.mul(scaled).scaled(complex(1/float64(k), 0))
		result = result.add(term)
		if term.infNorm() < taylorTolerance {
			break
		}
	}

	for i := 0; i < squarings; i++ {
		result = result.mul(result)
	}
	return result
}
