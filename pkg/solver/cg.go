package solver

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"toy-fem/internal/consts"
	"toy-fem/pkg/system"
)

// CG is Jacobi-preconditioned conjugate gradient on a CSR snapshot of the
// system. Zero-valued fields fall back to the package defaults.
type CG struct {
	Tol     float64 // relative residual target
	MaxIter int     // iteration cap, default 10*n with a floor of 200
}

func NewCG() *CG {
	return &CG{Tol: consts.ResidualTol}
}

func (c *CG) Name() string { return "cg" }

func (c *CG) Solve(sys *system.System) ([]float64, error) {
	n := sys.Size()
	a := sys.Compress()

	b := make([]float64, n)
	copy(b, sys.RHS())

	diag := a.Diag()
	for i, d := range diag {
		if d <= 0 {
			return nil, fmt.Errorf("%w: non-positive diagonal at DOF %d", ErrSingularSystem, i)
		}
	}

	tol := c.Tol
	if tol <= 0 {
		tol = consts.ResidualTol
	}
	maxIter := c.MaxIter
	if maxIter <= 0 {
		maxIter = consts.MaxIterFactor * n
		if maxIter < consts.MinMaxIter {
			maxIter = consts.MinMaxIter
		}
	}

	bnorm := floats.Norm(b, 2)
	x := make([]float64, n)
	if bnorm == 0 {
		return x, nil
	}

	// x starts at zero, so r = b.
	r := make([]float64, n)
	copy(r, b)
	z := make([]float64, n)
	for i := range z {
		z[i] = r[i] / diag[i]
	}
	p := make([]float64, n)
	copy(p, z)
	ap := make([]float64, n)
	rz := floats.Dot(r, z)

	for iter := 0; iter < maxIter; iter++ {
		a.MulVec(ap, p)
		pap := floats.Dot(p, ap)
		if pap <= 0 {
			return nil, fmt.Errorf("%w: curvature %g at iteration %d", ErrSingularSystem, pap, iter)
		}
		alpha := rz / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		if floats.Norm(r, 2) <= tol*bnorm {
			return x, nil
		}

		for i := range z {
			z[i] = r[i] / diag[i]
		}
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}

	return nil, fmt.Errorf("%w: %d iterations, tol %g", ErrConvergenceFailure, maxIter, tol)
}
