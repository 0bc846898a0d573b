package solver

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"toy-fem/pkg/system"
)

var (
	ErrSingularSystem     = errors.New("solver: system is singular or not positive-definite")
	ErrConvergenceFailure = errors.New("solver: iteration limit reached before tolerance")
)

// Method solves the constrained symmetric positive-definite system A u = b
// to a relative residual tolerance. The contract fixes the tolerance, not
// the algorithm.
type Method interface {
	Name() string
	Solve(sys *system.System) ([]float64, error)
}

// residualOK reports whether ||b - A x|| <= tol * ||b||. A zero RHS is
// satisfied by any exact-zero residual.
func residualOK(a *system.CSR, x, b []float64, tol float64) bool {
	r := make([]float64, len(b))
	a.MulVec(r, x)
	floats.AddScaled(r, -1, b)
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		bnorm = 1
	}
	return floats.Norm(r, 2) <= tol*bnorm
}
