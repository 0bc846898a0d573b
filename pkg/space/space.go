package space

import (
	"errors"
	"fmt"

	"toy-fem/internal/consts"
	"toy-fem/pkg/mesh"
)

var ErrDegenerateElement = errors.New("space: degenerate element with zero area")

// FunctionSpace maps mesh vertices to degrees of freedom and evaluates the
// P1 basis per element. For piecewise-linear interpolation the mapping is the
// identity, kept explicit so the design generalizes to richer spaces.
type FunctionSpace struct {
	m *mesh.Mesh
}

func NewP1(m *mesh.Mesh) *FunctionSpace {
	return &FunctionSpace{m: m}
}

func (s *FunctionSpace) Mesh() *mesh.Mesh { return s.m }

// NumDOFs equals the vertex count for P1.
func (s *FunctionSpace) NumDOFs() int { return s.m.VertexCount() }

// DOF returns the global degree of freedom of a vertex.
func (s *FunctionSpace) DOF(vertex int) int { return vertex }

// ElementDOFs returns the global DOFs of triangle t in local order.
func (s *FunctionSpace) ElementDOFs(t int) [3]int {
	tri := s.m.Triangle(t)
	return [3]int{s.DOF(tri[0]), s.DOF(tri[1]), s.DOF(tri[2])}
}

// ElementGeometry returns the three constant basis gradients of triangle t
// and its area. Gradient i is the scaled edge normal opposite local vertex i:
//
//	grad phi_i = (y_j - y_k, x_k - x_j) / (2 A)   with (i, j, k) cyclic
//
// A collapsed triangle fails with ErrDegenerateElement; the structured
// generator cannot produce one, the check guards other mesh sources.
func (s *FunctionSpace) ElementGeometry(t int) (grads [3][2]float64, area float64, err error) {
	tri := s.m.Triangle(t)
	x0, y0 := s.m.Vertex(tri[0])
	x1, y1 := s.m.Vertex(tri[1])
	x2, y2 := s.m.Vertex(tri[2])

	twoA := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	area = 0.5 * twoA
	if area <= consts.DegenerateAreaTol {
		return grads, 0, fmt.Errorf("%w: triangle %d area %g", ErrDegenerateElement, t, area)
	}

	grads[0] = [2]float64{(y1 - y2) / twoA, (x2 - x1) / twoA}
	grads[1] = [2]float64{(y2 - y0) / twoA, (x0 - x2) / twoA}
	grads[2] = [2]float64{(y0 - y1) / twoA, (x1 - x0) / twoA}
	return grads, area, nil
}
