package bc

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"toy-fem/internal/consts"
	"toy-fem/pkg/mesh"
	"toy-fem/pkg/space"
	"toy-fem/pkg/system"
)

var ErrNoBoundaryDofs = errors.New("bc: edge predicate matched no DOFs")

func onLeftEdge(x float64) bool  { return math.Abs(x) < consts.BoundaryTol }
func onRightEdge(x float64) bool { return math.Abs(x-1.0) < consts.BoundaryTol }

// Set holds the Dirichlet constraints for one solve: prescribed values keyed
// by DOF, partitioned into the left (x=0) and right (x=1) edge groups.
type Set struct {
	values map[int]float64
	left   []int
	right  []int
}

// Build classifies boundary DOFs by a tolerance comparison on the
// x-coordinate and records the prescribed edge values. A DOF matching both
// predicates keeps the right-edge value; that can only happen on a
// degenerate one-cell mesh. Either edge matching nothing means the mesh and
// the geometry disagree and fails with ErrNoBoundaryDofs.
func Build(m *mesh.Mesh, fs *space.FunctionSpace, leftVal, rightVal float64) (*Set, error) {
	s := &Set{values: make(map[int]float64)}

	for v := 0; v < m.VertexCount(); v++ {
		x, _ := m.Vertex(v)
		if onLeftEdge(x) {
			d := fs.DOF(v)
			s.left = append(s.left, d)
			s.values[d] = leftVal
		}
	}
	// Right edge second: its value wins a tie.
	for v := 0; v < m.VertexCount(); v++ {
		x, _ := m.Vertex(v)
		if onRightEdge(x) {
			d := fs.DOF(v)
			s.right = append(s.right, d)
			s.values[d] = rightVal
		}
	}

	if len(s.left) == 0 {
		return nil, fmt.Errorf("%w: left edge x=0", ErrNoBoundaryDofs)
	}
	if len(s.right) == 0 {
		return nil, fmt.Errorf("%w: right edge x=1", ErrNoBoundaryDofs)
	}
	return s, nil
}

// Left returns the DOFs on the x=0 edge.
func (s *Set) Left() []int { return s.left }

// Right returns the DOFs on the x=1 edge.
func (s *Set) Right() []int { return s.right }

// Value returns the prescribed value for a constrained DOF.
func (s *Set) Value(dof int) (float64, bool) {
	v, ok := s.values[dof]
	return v, ok
}

// Constrained returns all constrained DOFs in ascending order.
func (s *Set) Constrained() []int {
	dofs := make([]int, 0, len(s.values))
	for d := range s.values {
		dofs = append(dofs, d)
	}
	sort.Ints(dofs)
	return dofs
}

// Apply enforces every constraint on sys by symmetric elimination: the
// constrained row becomes the identity row with b[d] = v, and each remaining
// row r with a coupling A[r][d] moves it to the right-hand side
// (b[r] -= A[r][d]*v, A[r][d] = 0). Symmetry and positive-definiteness of
// the reduced system are preserved.
func (s *Set) Apply(sys *system.System) {
	constrained := s.Constrained()

	for r := 0; r < sys.Size(); r++ {
		if _, ok := s.values[r]; ok {
			continue
		}
		for _, d := range constrained {
			if a := sys.At(r, d); a != 0 {
				sys.AddRHS(r, -a*s.values[d])
				sys.ZeroEntry(r, d)
			}
		}
	}

	for _, d := range constrained {
		sys.SetUnitRow(d)
		sys.SetRHS(d, s.values[d])
	}
}
