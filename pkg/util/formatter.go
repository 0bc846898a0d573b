package util

import (
	"fmt"
	"math"
	"strings"

	"toy-fem/pkg/heat"
	"toy-fem/pkg/mesh"
)

// FormatValueFactor renders a value with an engineering prefix, e.g.
// "0.0025 C" as "2.500 mC".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1 || absValue == 0:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FieldRange returns the extreme values of the solved field.
func FieldRange(sol *heat.Solution) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for i := 0; i < sol.Size(); i++ {
		v := sol.At(i)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// CenterlineProfile renders the temperature along the horizontal centerline
// of a structured mesh, one vertex per line. Meshes without grid structure
// yield an empty string.
func CenterlineProfile(m *mesh.Mesh, sol *heat.Solution) string {
	n := m.Resolution()
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	row := n / 2
	for col := 0; col <= n; col++ {
		v := row*(n+1) + col
		x, _ := m.Vertex(v)
		sb.WriteString(fmt.Sprintf("x=%.4f  T=%s\n", x, FormatValueFactor(sol.At(v), "C")))
	}
	return sb.String()
}
