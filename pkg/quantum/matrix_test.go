package quantum

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestExpmZeroMatrixIsIdentity(t *testing.T) {
	n := 4
	result := expm(newCMatrix(n))

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := complex128(0)
			if i == j {
				want = 1
			}
			if result.at(i, j) != want {
				t.Errorf("expm(0)[%d][%d] = %v, want %v", i, j, result.at(i, j), want)
			}
		}
	}
}

// TestExpmDiagonal checks exp of a diagonal anti-Hermitian generator
// against the scalar exponential e^{-i*theta}.
func TestExpmDiagonal(t *testing.T) {
	thetas := []float64{0.1, 1.0, 2.5}

	a := newCMatrix(len(thetas))
	for i, theta := range thetas {
		a.set(i, i, complex(0, -theta))
	}

	result := expm(a)
	for i, theta := range thetas {
		want := cmplx.Exp(complex(0, -theta))
		got := result.at(i, i)
		if cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("expm diagonal[%d] = %v, want %v", i, got, want)
		}
	}
	for i := range thetas {
		for j := range thetas {
			if i != j && cmplx.Abs(result.at(i, j)) > 1e-12 {
				t.Errorf("expm off-diagonal[%d][%d] = %v, want 0", i, j, result.at(i, j))
			}
		}
	}
}

// TestExpmUnitary: for real symmetric H the operator exp(-i*H*dt) must
// preserve the norm of any state it is applied to.
func TestExpmUnitary(t *testing.T) {
	h := [][]float64{
		{2.0, -1.2, 0, -0.3},
		{-1.2, 1.5, -0.8, 0},
		{0, -0.8, 3.1, -1.0},
		{-0.3, 0, -1.0, 0.7},
	}
	n := len(h)
	dt := 0.05

	generator := newCMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			generator.set(i, j, complex(0, -h[i][j]*dt))
		}
	}
	operator := expm(generator)

	psi := []complex128{complex(0.5, 0), complex(0, 0.5), complex(0.5, 0), complex(0, 0.5)}
	for step := 0; step < 100; step++ {
		psi = operator.matVec(psi)
	}

	norm := vectorNorm(psi)
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("norm after 100 applications = %v, want 1 within 1e-9", norm)
	}
}

// TestExpmLargeNorm exercises the scaling path: a generator with norm well
// above the series radius must still exponentiate accurately.
func TestExpmLargeNorm(t *testing.T) {
	theta := 50.0
	a := newCMatrix(2)
	a.set(0, 0, complex(0, -theta))
	a.set(1, 1, complex(0, theta))

	result := expm(a)
	want0 := cmplx.Exp(complex(0, -theta))
	want1 := cmplx.Exp(complex(0, theta))

	if cmplx.Abs(result.at(0, 0)-want0) > 1e-9 {
		t.Errorf("expm[0][0] = %v, want %v", result.at(0, 0), want0)
	}
	if cmplx.Abs(result.at(1, 1)-want1) > 1e-9 {
		t.Errorf("expm[1][1] = %v, want %v", result.at(1, 1), want1)
	}
}

func TestMatVec(t *testing.T) {
	m := newCMatrix(2)
	m.set(0, 0, 1)
	m.set(0, 1, complex(0, 1))
	m.set(1, 0, complex(0, -1))
	m.set(1, 1, 1)

	v := []complex128{1, complex(0, 1)}
	got := m.matVec(v)

	// Row 0: 1*1 + i*i = 0; row 1: -i*1 + 1*i = 0
	want := []complex128{0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("matVec[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInfNorm(t *testing.T) {
	m := newCMatrix(2)
	m.set(0, 0, complex(3, 4)) // abs 5
	m.set(0, 1, 1)
	m.set(1, 0, 2)

	if got := m.infNorm(); got != 6.0 {
		t.Errorf("infNorm = %v, want 6", got)
	}
}
