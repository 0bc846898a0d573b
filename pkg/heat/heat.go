package heat

import (
	"errors"
	"fmt"

	"toy-fem/pkg/assembly"
	"toy-fem/pkg/bc"
	"toy-fem/pkg/mesh"
	"toy-fem/pkg/solver"
	"toy-fem/pkg/space"
	"toy-fem/pkg/system"
)

var (
	ErrInvalidParameter = errors.New("heat: invalid parameter")
	ErrSolverReused     = errors.New("heat: solver instance already used")
)

// Params are the validated inputs of one solve of the steady-state heat
// equation -div(k grad u) = f on the unit square with Dirichlet values on
// the left and right edges.
type Params struct {
	K          float64 // thermal conductivity, must be positive
	Source     float64 // uniform heat source
	LeftTemp   float64 // prescribed temperature at x=0
	RightTemp  float64 // prescribed temperature at x=1
	Resolution int     // grid resolution, at least 4
}

func DefaultParams() Params {
	return Params{
		K:          1.0,
		Source:     0.0,
		LeftTemp:   100.0,
		RightTemp:  0.0,
		Resolution: 32,
	}
}

type state int

const (
	stateUnvalidated state = iota
	stateValidated
	stateMeshBuilt
	stateAssembled
	stateConstrained
	stateSolved
)

// Solver sequences validate -> mesh -> assemble -> constrain -> solve.
// Transitions are strictly forward and an instance performs exactly one
// solve; errors from any stage abort the sequence and propagate unchanged.
type Solver struct {
	params  Params
	method  solver.Method
	workers int
	state   state
}

type Option func(*Solver)

// WithMethod selects the linear solver backend; the default is sparse LU.
func WithMethod(m solver.Method) Option {
	return func(s *Solver) { s.method = m }
}

// WithWorkers enables partitioned parallel assembly.
func WithWorkers(n int) Option {
	return func(s *Solver) { s.workers = n }
}

func New(p Params, opts ...Option) *Solver {
	s := &Solver{
		params:  p,
		method:  solver.NewLU(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve runs the pipeline and returns the mesh with the per-vertex
// temperature field. No partial result is ever returned on failure.
func (s *Solver) Solve() (*mesh.Mesh, *Solution, error) {
	if s.state != stateUnvalidated {
		return nil, nil, ErrSolverReused
	}
	if err := s.validate(); err != nil {
		return nil, nil, err
	}

	m, err := mesh.UnitSquare(s.params.Resolution)
	if err != nil {
		return nil, nil, err
	}
	s.state = stateMeshBuilt

	fs := space.NewP1(m)
	sys := system.New(fs.NumDOFs())
	asm := assembly.New(fs, s.params.K, s.params.Source)
	asm.SetWorkers(s.workers)
	if err := asm.Assemble(sys); err != nil {
		return nil, nil, err
	}
	s.state = stateAssembled

	set, err := bc.Build(m, fs, s.params.LeftTemp, s.params.RightTemp)
	if err != nil {
		return nil, nil, err
	}
	set.Apply(sys)
	s.state = stateConstrained

	u, err := s.method.Solve(sys)
	if err != nil {
		return nil, nil, err
	}
	s.state = stateSolved

	return m, &Solution{values: u}, nil
}

func (s *Solver) validate() error {
	if s.params.K <= 0 {
		return fmt.Errorf("%w: thermal conductivity must be positive, got %g", ErrInvalidParameter, s.params.K)
	}
	if s.params.Resolution < 4 {
		return fmt.Errorf("%w: mesh resolution must be at least 4, got %d", ErrInvalidParameter, s.params.Resolution)
	}
	s.state = stateValidated
	return nil
}
