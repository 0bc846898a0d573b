package system

// CSR is a read-only compressed-row snapshot of a System matrix.
type CSR struct {
	n      int
	rowPtr []int
	colIdx []int
	vals   []float64
}

func (c *CSR) Size() int { return c.n }

func (c *CSR) NNZ() int { return len(c.vals) }

// MulVec computes dst = A x.
func (c *CSR) MulVec(dst, x []float64) {
	for i := 0; i < c.n; i++ {
		sum := 0.0
		for p := c.rowPtr[i]; p < c.rowPtr[i+1]; p++ {
			sum += c.vals[p] * x[c.colIdx[p]]
		}
		dst[i] = sum
	}
}

// Diag returns the main diagonal, zeros where no entry is stored.
func (c *CSR) Diag() []float64 {
	d := make([]float64, c.n)
	for i := 0; i < c.n; i++ {
		for p := c.rowPtr[i]; p < c.rowPtr[i+1]; p++ {
			if c.colIdx[p] == i {
				d[i] = c.vals[p]
				break
			}
		}
	}
	return d
}
