package heat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"toy-fem/pkg/bc"
	"toy-fem/pkg/solver"
	"toy-fem/pkg/space"
)

func TestBasicSolution(t *testing.T) {
	s := New(Params{
		K:          1.0,
		Source:     0.0,
		LeftTemp:   100.0,
		RightTemp:  0.0,
		Resolution: 8,
	})
	m, sol, err := s.Solve()
	require.NoError(t, err)

	require.Equal(t, 81, m.VertexCount()) // (8+1)^2
	require.Equal(t, 128, m.TriangleCount())
	require.Equal(t, 81, sol.Size())

	// Midpoint of the linear profile between 100 and 0.
	center := 4*9 + 4 // vertex at (0.5, 0.5)
	require.InDelta(t, 50.0, sol.At(center), 1e-6)
}

func TestParameterValidation(t *testing.T) {
	_, _, err := New(Params{K: -1.0, Resolution: 32}).Solve()
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, _, err = New(Params{K: 1.0, Resolution: 3}).Solve()
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, _, err = New(Params{K: 0.0, Resolution: 32}).Solve()
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDefaults(t *testing.T) {
	p := DefaultParams()
	require.Equal(t, Params{K: 1.0, Source: 0.0, LeftTemp: 100.0, RightTemp: 0.0, Resolution: 32}, p)

	m, sol, err := New(p).Solve()
	require.NoError(t, err)
	require.Equal(t, 33*33, m.VertexCount())
	require.Equal(t, m.VertexCount(), sol.Size())
}

func TestBoundaryValuesHold(t *testing.T) {
	p := Params{K: 2.0, Source: 5.0, LeftTemp: 75.0, RightTemp: -25.0, Resolution: 8}
	m, sol, err := New(p).Solve()
	require.NoError(t, err)

	set, err := bc.Build(m, space.NewP1(m), p.LeftTemp, p.RightTemp)
	require.NoError(t, err)
	for _, d := range set.Left() {
		require.InDelta(t, p.LeftTemp, sol.At(d), 1e-8)
	}
	for _, d := range set.Right() {
		require.InDelta(t, p.RightTemp, sol.At(d), 1e-8)
	}
}

func TestZeroSourceGivesLinearProfile(t *testing.T) {
	// With f = 0 the exact solution left + x*(right-left) is itself
	// piecewise linear, so the discrete solution reproduces it for any
	// positive conductivity, independent of y.
	p := Params{K: 3.7, Source: 0.0, LeftTemp: 25.0, RightTemp: 75.0, Resolution: 8}
	m, sol, err := New(p).Solve()
	require.NoError(t, err)

	for v := 0; v < m.VertexCount(); v++ {
		x, _ := m.Vertex(v)
		want := p.LeftTemp + x*(p.RightTemp-p.LeftTemp)
		require.InDelta(t, want, sol.At(v), 1e-6, "vertex %d at x=%g", v, x)
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	p := Params{K: 1.0, Source: 2.0, LeftTemp: 100.0, RightTemp: 0.0, Resolution: 8}

	m1, s1, err := New(p).Solve()
	require.NoError(t, err)
	m2, s2, err := New(p).Solve()
	require.NoError(t, err)

	require.Equal(t, m1, m2)
	require.Equal(t, s1.Values(), s2.Values())
}

func TestSolverReuseRejected(t *testing.T) {
	s := New(DefaultParams())
	_, _, err := s.Solve()
	require.NoError(t, err)
	_, _, err = s.Solve()
	require.ErrorIs(t, err, ErrSolverReused)

	// A failed instance is spent as well.
	bad := New(Params{K: -1, Resolution: 8})
	_, _, err = bad.Solve()
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCGBackendMatchesLU(t *testing.T) {
	p := Params{K: 1.0, Source: 10.0, LeftTemp: 100.0, RightTemp: 0.0, Resolution: 8}

	_, lu, err := New(p).Solve()
	require.NoError(t, err)
	_, cg, err := New(p, WithMethod(solver.NewCG())).Solve()
	require.NoError(t, err)

	require.Equal(t, lu.Size(), cg.Size())
	for i := 0; i < lu.Size(); i++ {
		require.InDelta(t, lu.At(i), cg.At(i), 1e-6)
	}
}

func TestParallelAssemblyMatchesSerial(t *testing.T) {
	p := Params{K: 1.0, Source: 4.0, LeftTemp: 50.0, RightTemp: 10.0, Resolution: 16}

	_, serial, err := New(p).Solve()
	require.NoError(t, err)
	_, parallel, err := New(p, WithWorkers(4)).Solve()
	require.NoError(t, err)

	for i := 0; i < serial.Size(); i++ {
		require.InDelta(t, serial.At(i), parallel.At(i), 1e-8)
	}
}

func TestSolutionValuesAreACopy(t *testing.T) {
	_, sol, err := New(Params{K: 1, LeftTemp: 10, Resolution: 4}).Solve()
	require.NoError(t, err)

	vals := sol.Values()
	vals[0] = -1e9
	require.NotEqual(t, vals[0], sol.At(0))
}

func TestMeshSolutionPairing(t *testing.T) {
	for _, n := range []int{4, 5, 12} {
		m, sol, err := New(Params{K: 1, LeftTemp: 1, Resolution: n}).Solve()
		require.NoError(t, err)
		require.Equal(t, (n+1)*(n+1), m.VertexCount())
		require.Equal(t, m.VertexCount(), sol.Size())
	}
}
