package mesh

import (
	"errors"
	"fmt"
)

var ErrInvalidResolution = errors.New("mesh: resolution must be at least 1")

// Mesh is an immutable triangulation of the unit square. Vertices are laid
// out row-major on a regular grid, triangles reference vertices by index
// with counter-clockwise winding.
type Mesh struct {
	resolution int
	spacing    float64
	vertices   [][2]float64
	triangles  [][3]int
}

// UnitSquare builds a structured mesh of [0,1]x[0,1] with (n+1)^2 vertices
// and 2n^2 triangles. Each grid cell is split along the same diagonal so the
// output is bit-identical for equal n.
func UnitSquare(n int) (*Mesh, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidResolution, n)
	}

	nv := (n + 1) * (n + 1)
	vertices := make([][2]float64, 0, nv)
	for row := 0; row <= n; row++ {
		y := float64(row) / float64(n)
		for col := 0; col <= n; col++ {
			x := float64(col) / float64(n)
			vertices = append(vertices, [2]float64{x, y})
		}
	}

	triangles := make([][3]int, 0, 2*n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			v00 := row*(n+1) + col
			v10 := v00 + 1
			v01 := v00 + n + 1
			v11 := v01 + 1
			triangles = append(triangles,
				[3]int{v00, v10, v11},
				[3]int{v00, v11, v01})
		}
	}

	return &Mesh{
		resolution: n,
		spacing:    1.0 / float64(n),
		vertices:   vertices,
		triangles:  triangles,
	}, nil
}

// New builds a mesh from explicit vertex and connectivity tables. It exists
// for mesh sources other than the structured generator; indices are checked
// for bounds and distinctness, geometry is not.
func New(vertices [][2]float64, triangles [][3]int) (*Mesh, error) {
	nv := len(vertices)
	for t, tri := range triangles {
		for _, v := range tri {
			if v < 0 || v >= nv {
				return nil, fmt.Errorf("mesh: triangle %d references vertex %d outside [0,%d)", t, v, nv)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			return nil, fmt.Errorf("mesh: triangle %d has repeated vertex indices %v", t, tri)
		}
	}

	vs := make([][2]float64, nv)
	copy(vs, vertices)
	ts := make([][3]int, len(triangles))
	copy(ts, triangles)

	return &Mesh{vertices: vs, triangles: ts}, nil
}

func (m *Mesh) VertexCount() int { return len(m.vertices) }

func (m *Mesh) TriangleCount() int { return len(m.triangles) }

// Vertex returns the coordinates of vertex i.
func (m *Mesh) Vertex(i int) (x, y float64) {
	return m.vertices[i][0], m.vertices[i][1]
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) [3]int { return m.triangles[t] }

// Resolution returns the grid resolution, 0 for meshes built with New.
func (m *Mesh) Resolution() int { return m.resolution }

// Spacing returns the grid spacing, 0 for meshes built with New.
func (m *Mesh) Spacing() float64 { return m.spacing }
