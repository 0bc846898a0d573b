package assembly

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"toy-fem/pkg/space"
	"toy-fem/pkg/system"
)

// Assembler stamps per-triangle stiffness and load contributions into the
// global system:
//
//	K_e[i][j] = k * Area * (grad phi_i . grad phi_j)
//	F_e[i]    = f * Area * integral(phi_i)
//
// Accumulation is additive; a DOF shared by several triangles collects all
// of their contributions. Boundary conditions are not applied here.
type Assembler struct {
	fs      *space.FunctionSpace
	k       float64
	f       float64
	quad    space.Quadrature
	workers int
}

func New(fs *space.FunctionSpace, k, f float64) *Assembler {
	return &Assembler{
		fs:      fs,
		k:       k,
		f:       f,
		quad:    space.Centroid(),
		workers: 1,
	}
}

// SetQuadrature overrides the centroid rule used for the load vector.
func (a *Assembler) SetQuadrature(q space.Quadrature) { a.quad = q }

// SetWorkers enables partitioned assembly across n goroutines. Each worker
// accumulates into a private buffer, merged by addition at the end, so no
// locking guards the shared system.
func (a *Assembler) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	a.workers = n
}

// Assemble fully determines the pre-boundary-condition state of sys.
func (a *Assembler) Assemble(sys *system.System) error {
	if sys.Size() != a.fs.NumDOFs() {
		return fmt.Errorf("assembly: system size %d does not match %d DOFs", sys.Size(), a.fs.NumDOFs())
	}
	nt := a.fs.Mesh().TriangleCount()
	if a.workers <= 1 || nt < 2*a.workers {
		return a.assembleRange(sys, 0, nt)
	}
	return a.assembleParallel(sys, nt)
}

func (a *Assembler) assembleRange(sys *system.System, lo, hi int) error {
	basis := a.quad.BasisIntegrals()
	grad := mat.NewDense(2, 3, nil)
	var ke mat.Dense

	for t := lo; t < hi; t++ {
		grads, area, err := a.fs.ElementGeometry(t)
		if err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			grad.Set(0, i, grads[i][0])
			grad.Set(1, i, grads[i][1])
		}
		// 3x3 Gram matrix of the basis gradients.
		ke.Mul(grad.T(), grad)

		dofs := a.fs.ElementDOFs(t)
		scale := a.k * area
		for i, gi := range dofs {
			for j, gj := range dofs {
				sys.Add(gi, gj, scale*ke.At(i, j))
			}
			sys.AddRHS(gi, a.f*area*basis[i])
		}
	}
	return nil
}

func (a *Assembler) assembleParallel(sys *system.System, nt int) error {
	workers := a.workers
	chunk := (nt + workers - 1) / workers

	parts := make([]*system.System, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > nt {
			hi = nt
		}
		if lo >= hi {
			break
		}
		parts[w] = system.New(sys.Size())
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			errs[w] = a.assembleRange(parts[w], lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	// Merge in partition order to keep the result deterministic.
	for _, p := range parts {
		if p == nil {
			continue
		}
		if err := sys.Merge(p); err != nil {
			return err
		}
	}
	return nil
}
