package heat

// Solution is the solved temperature field, one value per mesh vertex,
// piecewise-linear in between through the P1 basis. A solution only has
// meaning next to the mesh that indexes it.
type Solution struct {
	values []float64
}

func (s *Solution) Size() int { return len(s.values) }

// At returns the temperature at vertex i.
func (s *Solution) At(i int) float64 { return s.values[i] }

// Values returns a copy of the per-vertex values.
func (s *Solution) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}
