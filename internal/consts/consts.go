package consts

const (
	BoundaryTol       = 1e-10 // absolute edge tolerance, domain is the unit square
	ResidualTol       = 1e-10 // relative residual target for the linear solve
	DegenerateAreaTol = 1e-14 // element area below this counts as collapsed

	MaxIterFactor = 10 // CG iteration cap = MaxIterFactor * unknowns
	MinMaxIter    = 200
)
