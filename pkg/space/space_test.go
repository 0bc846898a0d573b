package space

import (
	"testing"

	"github.com/stretchr/testify/require"

	"toy-fem/pkg/mesh"
)

func TestP1DOFMappingIsIdentity(t *testing.T) {
	m, err := mesh.UnitSquare(8)
	require.NoError(t, err)

	fs := NewP1(m)
	require.Equal(t, m.VertexCount(), fs.NumDOFs())
	for v := 0; v < m.VertexCount(); v++ {
		require.Equal(t, v, fs.DOF(v))
	}
}

func TestElementGeometry(t *testing.T) {
	m, err := mesh.UnitSquare(4)
	require.NoError(t, err)
	fs := NewP1(m)

	totalArea := 0.0
	for e := 0; e < m.TriangleCount(); e++ {
		grads, area, err := fs.ElementGeometry(e)
		require.NoError(t, err)
		require.Greater(t, area, 0.0)
		totalArea += area

		// Partition of unity: basis gradients sum to zero.
		require.InDelta(t, 0.0, grads[0][0]+grads[1][0]+grads[2][0], 1e-14)
		require.InDelta(t, 0.0, grads[0][1]+grads[1][1]+grads[2][1], 1e-14)
	}
	require.InDelta(t, 1.0, totalArea, 1e-12, "triangle areas cover the unit square")
}

func TestElementGeometryReproducesLinearGradients(t *testing.T) {
	// u(x,y) = a + b x + c y interpolated at the vertices must have the
	// exact constant gradient (b, c) on every element.
	a, b, c := 2.0, -3.5, 0.75

	m, err := mesh.UnitSquare(4)
	require.NoError(t, err)
	fs := NewP1(m)

	for e := 0; e < m.TriangleCount(); e++ {
		grads, _, err := fs.ElementGeometry(e)
		require.NoError(t, err)

		tri := m.Triangle(e)
		gx, gy := 0.0, 0.0
		for i, v := range tri {
			x, y := m.Vertex(v)
			u := a + b*x + c*y
			gx += u * grads[i][0]
			gy += u * grads[i][1]
		}
		require.InDelta(t, b, gx, 1e-12)
		require.InDelta(t, c, gy, 1e-12)
	}
}

func TestElementGeometryRejectsDegenerateTriangle(t *testing.T) {
	// Three collinear vertices: zero area.
	m, err := mesh.New(
		[][2]float64{{0, 0}, {0.5, 0}, {1, 0}},
		[][3]int{{0, 1, 2}},
	)
	require.NoError(t, err)

	_, _, err = NewP1(m).ElementGeometry(0)
	require.ErrorIs(t, err, ErrDegenerateElement)
}

func TestQuadratureBasisIntegrals(t *testing.T) {
	for _, q := range []Quadrature{Centroid(), ThreePoint()} {
		ints := q.BasisIntegrals()
		sum := 0.0
		for i := 0; i < 3; i++ {
			require.InDelta(t, 1.0/3.0, ints[i], 1e-15, "rule %s basis %d", q.Name(), i)
			sum += ints[i]
		}
		require.InDelta(t, 1.0, sum, 1e-15)
	}
}
