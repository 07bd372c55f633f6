package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/spatialdyn/internal/gradcheck"
)

// RenderResults formats gradient-check results as a table with a summary
// line.
func RenderResults(results []gradcheck.Result, theme Theme) string {
	pass := lipgloss.NewStyle().Bold(true).Foreground(theme.Pass)
	fail := lipgloss.NewStyle().Bold(true).Foreground(theme.Fail)

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(fmt.Sprintf("%-24s %4s %12s %12s  %s", "CASE", "DIM", "MAX ABS", "MAX REL", "")))
	s.WriteByte('\n')

	failed := 0
	for _, r := range results {
		status := pass.Render("ok")
		if !r.Pass {
			status = fail.Render("FAIL")
			failed++
		}
		fmt.Fprintf(&s, "%-24s %4d %12.3e %12.3e  %s\n", r.Name, r.Dim, r.MaxAbs, r.MaxRel, status)
	}

	s.WriteByte('\n')
	if failed == 0 {
		s.WriteString(pass.Render(fmt.Sprintf("%d/%d passed", len(results), len(results))))
	} else {
		s.WriteString(fail.Render(fmt.Sprintf("%d/%d failed", failed, len(results))))
	}
	s.WriteByte('\n')
	return s.String()
}

// errorFloor keeps exact gradients plottable on a log scale.
const errorFloor = 1e-18

// PlotErrors charts log10 of each case's relative error in case order.
func PlotErrors(results []gradcheck.Result) string {
	if len(results) == 0 {
		return ""
	}

	data := make([]float64, len(results))
	for i, r := range results {
		data[i] = math.Log10(math.Max(r.MaxRel, errorFloor))
	}

	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(len(data)*3),
		asciigraph.Caption("log10 relative error per case"),
	)
}
