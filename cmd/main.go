package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"toy-fem/pkg/heat"
	"toy-fem/pkg/problem"
	"toy-fem/pkg/solver"
	"toy-fem/pkg/util"
)

var (
	condFlag    = flag.Float64("k", 1.0, "thermal conductivity")
	sourceFlag  = flag.Float64("f", 0.0, "uniform heat source")
	leftFlag    = flag.Float64("left", 100.0, "left edge temperature")
	rightFlag   = flag.Float64("right", 0.0, "right edge temperature")
	resFlag     = flag.Int("n", 32, "mesh resolution")
	solverFlag  = flag.String("solver", "lu", "linear solver backend (lu or cg)")
	workersFlag = flag.Int("workers", 1, "parallel assembly workers")
)

func methodByName(name string) (solver.Method, error) {
	switch name {
	case "lu":
		return solver.NewLU(), nil
	case "cg":
		return solver.NewCG(), nil
	default:
		return nil, fmt.Errorf("unknown solver backend: %s", name)
	}
}

func setup() (heat.Params, solver.Method, int, string, error) {
	if flag.NArg() == 1 {
		// Deck file run.
		content, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			return heat.Params{}, nil, 0, "", fmt.Errorf("reading deck file: %v", err)
		}
		deck, err := problem.Parse(string(content))
		if err != nil {
			return heat.Params{}, nil, 0, "", err
		}
		method, err := methodByName(deck.Solver)
		if err != nil {
			return heat.Params{}, nil, 0, "", err
		}
		return deck.Params, method, deck.Workers, deck.Title, nil
	}

	params := heat.Params{
		K:          *condFlag,
		Source:     *sourceFlag,
		LeftTemp:   *leftFlag,
		RightTemp:  *rightFlag,
		Resolution: *resFlag,
	}
	method, err := methodByName(*solverFlag)
	if err != nil {
		return heat.Params{}, nil, 0, "", err
	}
	return params, method, *workersFlag, "", nil
}

func main() {
	flag.Parse()
	if flag.NArg() > 1 {
		log.Fatal("Usage: toy-fem [flags] [deck_file]")
	}

	params, method, workers, title, err := setup()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if title != "" {
		fmt.Printf("%s\n\n", title)
	}
	fmt.Printf("Solving -div(k grad u) = f on the unit square\n")
	fmt.Printf("k=%g f=%g left=%g right=%g resolution=%d solver=%s workers=%d\n\n",
		params.K, params.Source, params.LeftTemp, params.RightTemp,
		params.Resolution, method.Name(), workers)

	h := heat.New(params, heat.WithMethod(method), heat.WithWorkers(workers))
	m, sol, err := h.Solve()
	if err != nil {
		log.Fatalf("Solve failed: %v", err)
	}

	fmt.Printf("Mesh: %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	min, max := util.FieldRange(sol)
	fmt.Printf("Temperature range: %s .. %s\n\n",
		util.FormatValueFactor(min, "C"), util.FormatValueFactor(max, "C"))

	fmt.Println("Centerline profile (y=0.5):")
	fmt.Print(util.CenterlineProfile(m, sol))
}
