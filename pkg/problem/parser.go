package problem

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"toy-fem/pkg/heat"
)

// Deck is a parsed problem description. The first line of a deck is its
// title; parameter lines are "name value" pairs and dot directives select
// the mesh resolution and solver backend:
//
//	steady-state plate, 100C to 0C
//	* uniform conductivity
//	k 1.0
//	f 0
//	left_temp 100
//	right_temp 0
//	.mesh 32
//	.solver cg
type Deck struct {
	Title   string
	Params  heat.Params
	Solver  string // "lu" or "cg"
	Workers int
}

var unitMap = map[string]float64{
	"T":   1e12,
	"G":   1e9,
	"meg": 1e6,
	"K":   1e3,
	"k":   1e3,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGKkmunpf])?$`)

// ParseValue parses a number with an optional engineering suffix
// ("2.5m" -> 0.0025, "1k" -> 1000).
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("problem: invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}
	if matches[2] != "" {
		num *= unitMap[matches[2]]
	}
	return num, nil
}

// Parse reads a deck. Unset parameters keep the documented defaults; range
// validation is left to the solver façade.
func Parse(input string) (*Deck, error) {
	d := &Deck{
		Params:  heat.DefaultParams(),
		Solver:  "lu",
		Workers: 1,
	}

	scanner := bufio.NewScanner(strings.NewReader(input))

	// Title line, possibly commented.
	if scanner.Scan() {
		d.Title = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(scanner.Text()), "*"))
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "*") {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if err := d.parseDirective(line); err != nil {
				return nil, err
			}
			continue
		}
		if err := d.parseParameter(line); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *Deck) parseDirective(line string) error {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ".mesh":
		if len(fields) != 2 {
			return fmt.Errorf("problem: .mesh needs a resolution")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("problem: invalid mesh resolution: %v", err)
		}
		d.Params.Resolution = n

	case ".solver":
		if len(fields) != 2 {
			return fmt.Errorf("problem: .solver needs a backend name")
		}
		name := strings.ToLower(fields[1])
		if name != "lu" && name != "cg" {
			return fmt.Errorf("problem: unknown solver backend: %s", fields[1])
		}
		d.Solver = name

	case ".workers":
		if len(fields) != 2 {
			return fmt.Errorf("problem: .workers needs a count")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return fmt.Errorf("problem: invalid worker count: %s", fields[1])
		}
		d.Workers = n

	default:
		return fmt.Errorf("problem: unsupported directive: %s", fields[0])
	}
	return nil
}

func (d *Deck) parseParameter(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("problem: invalid parameter line: %s", line)
	}

	value, err := ParseValue(fields[1])
	if err != nil {
		return err
	}

	switch strings.ToLower(fields[0]) {
	case "k":
		d.Params.K = value
	case "f":
		d.Params.Source = value
	case "left_temp":
		d.Params.LeftTemp = value
	case "right_temp":
		d.Params.RightTemp = value
	default:
		return fmt.Errorf("problem: unknown parameter: %s", fields[0])
	}
	return nil
}
