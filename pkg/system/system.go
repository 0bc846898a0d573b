package system

import (
	"fmt"
	"sort"
)

// System is the global linear system A u = b during accumulation. The matrix
// is stored as one map per row so that element stamping, row rewrites and
// symmetric column elimination are all cheap; Compress snapshots it to CSR
// for the solver.
type System struct {
	n    int
	rows []map[int]float64
	rhs  []float64
}

func New(n int) *System {
	return &System{
		n:    n,
		rows: make([]map[int]float64, n),
		rhs:  make([]float64, n),
	}
}

func (s *System) Size() int { return s.n }

func (s *System) checkIndex(i, j int) {
	if i < 0 || i >= s.n || j < 0 || j >= s.n {
		// An out-of-range DOF is a broken assembly invariant, not a
		// recoverable condition.
		panic(fmt.Sprintf("system: index (%d,%d) out of bounds for size %d", i, j, s.n))
	}
}

// Add accumulates v into A[i][j].
func (s *System) Add(i, j int, v float64) {
	s.checkIndex(i, j)
	if s.rows[i] == nil {
		s.rows[i] = make(map[int]float64)
	}
	s.rows[i][j] += v
}

// AddRHS accumulates v into b[i].
func (s *System) AddRHS(i int, v float64) {
	s.checkIndex(i, i)
	s.rhs[i] += v
}

func (s *System) At(i, j int) float64 {
	s.checkIndex(i, j)
	return s.rows[i][j]
}

// RHS returns the backing right-hand-side vector.
func (s *System) RHS() []float64 { return s.rhs }

func (s *System) SetRHS(i int, v float64) {
	s.checkIndex(i, i)
	s.rhs[i] = v
}

// SetUnitRow rewrites row i to the identity row.
func (s *System) SetUnitRow(i int) {
	s.checkIndex(i, i)
	s.rows[i] = map[int]float64{i: 1.0}
}

// ZeroEntry removes A[i][j] from the sparsity pattern.
func (s *System) ZeroEntry(i, j int) {
	s.checkIndex(i, j)
	delete(s.rows[i], j)
}

// RowSum returns the sum of row i. Before boundary enforcement every row of
// the stiffness matrix sums to zero: constants are in the null space.
func (s *System) RowSum(i int) float64 {
	s.checkIndex(i, i)
	sum := 0.0
	for _, v := range s.rows[i] {
		sum += v
	}
	return sum
}

func (s *System) NNZ() int {
	nnz := 0
	for _, row := range s.rows {
		nnz += len(row)
	}
	return nnz
}

// Each visits every stored entry in row-major, column-sorted order.
func (s *System) Each(fn func(i, j int, v float64)) {
	cols := make([]int, 0, 8)
	for i, row := range s.rows {
		cols = cols[:0]
		for j := range row {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			fn(i, j, row[j])
		}
	}
}

// Merge adds another system of the same size into this one. Used to combine
// per-worker accumulation buffers after partitioned assembly.
func (s *System) Merge(o *System) error {
	if o.n != s.n {
		return fmt.Errorf("system: cannot merge size %d into size %d", o.n, s.n)
	}
	for i, row := range o.rows {
		for j, v := range row {
			s.Add(i, j, v)
		}
	}
	for i, v := range o.rhs {
		s.rhs[i] += v
	}
	return nil
}

// Compress snapshots the matrix into compressed-row storage.
func (s *System) Compress() *CSR {
	c := &CSR{
		n:      s.n,
		rowPtr: make([]int, s.n+1),
		colIdx: make([]int, 0, s.NNZ()),
		vals:   make([]float64, 0, s.NNZ()),
	}
	cols := make([]int, 0, 8)
	for i, row := range s.rows {
		cols = cols[:0]
		for j := range row {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			c.colIdx = append(c.colIdx, j)
			c.vals = append(c.vals, row[j])
		}
		c.rowPtr[i+1] = len(c.colIdx)
	}
	return c
}
