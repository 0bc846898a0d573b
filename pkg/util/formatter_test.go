package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"toy-fem/pkg/heat"
)

func TestFormatValueFactor(t *testing.T) {
	require.Equal(t, "50.000 C", FormatValueFactor(50.0, "C"))
	require.Equal(t, "2.500 mC", FormatValueFactor(0.0025, "C"))
	require.Equal(t, "3.000 uC", FormatValueFactor(3e-6, "C"))
	require.Equal(t, "0.000 C", FormatValueFactor(0.0, "C"))
	require.Equal(t, "-12.500 C", FormatValueFactor(-12.5, "C"))
}

func TestFieldRangeAndProfile(t *testing.T) {
	p := heat.Params{K: 1.0, LeftTemp: 100.0, RightTemp: 0.0, Resolution: 4}
	m, sol, err := heat.New(p).Solve()
	require.NoError(t, err)

	min, max := FieldRange(sol)
	require.InDelta(t, 0.0, min, 1e-9)
	require.InDelta(t, 100.0, max, 1e-9)

	profile := CenterlineProfile(m, sol)
	lines := strings.Split(strings.TrimSpace(profile), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[0], "x=0.0000")
	require.Contains(t, lines[4], "x=1.0000")
}
