package space

// Quadrature is a fixed integration rule over the reference triangle, points
// in barycentric coordinates. The centroid rule is exact for constant
// integrands against P1 basis functions; the three-point midpoint rule is
// exact to degree 2 and exists for non-constant sources.
type Quadrature struct {
	name    string
	points  [][3]float64
	weights []float64
}

func Centroid() Quadrature {
	return Quadrature{
		name:    "centroid",
		points:  [][3]float64{{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}},
		weights: []float64{1.0},
	}
}

func ThreePoint() Quadrature {
	return Quadrature{
		name: "midpoint3",
		points: [][3]float64{
			{0.5, 0.5, 0.0},
			{0.0, 0.5, 0.5},
			{0.5, 0.0, 0.5},
		},
		weights: []float64{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0},
	}
}

func (q Quadrature) Name() string { return q.name }

// BasisIntegrals returns, per local basis function i, the rule's value of
// the unit-area integral of phi_i: sum_q w_q * phi_i(x_q). For any rule
// exact on linears each entry is 1/3.
func (q Quadrature) BasisIntegrals() [3]float64 {
	var out [3]float64
	for p, pt := range q.points {
		for i := 0; i < 3; i++ {
			out[i] += q.weights[p] * pt[i]
		}
	}
	return out
}
