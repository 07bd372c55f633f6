package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellNonzero = "●"
	cellZero    = "·"
)

// RenderSparsity draws the rows×cols row-major matrix data, one cell per
// entry. A rule is drawn after every blockRows rows when blockRows > 0.
func RenderSparsity(data []float64, rows, cols, blockRows int, theme Theme) string {
	nz := lipgloss.NewStyle().Foreground(theme.Nonzero)
	zero := lipgloss.NewStyle().Foreground(theme.Zero)
	rule := lipgloss.NewStyle().Foreground(theme.Block)

	var s strings.Builder
	for r := 0; r < rows; r++ {
		if blockRows > 0 && r > 0 && r%blockRows == 0 {
			s.WriteString(rule.Render(strings.Repeat("─", cols)))
			s.WriteByte('\n')
		}
		for c := 0; c < cols; c++ {
			if data[r*cols+c] != 0 {
				s.WriteString(nz.Render(cellNonzero))
			} else {
				s.WriteString(zero.Render(cellZero))
			}
		}
		s.WriteByte('\n')
	}
	return s.String()
}

// Nonzeros counts entries of data that are not exactly zero.
func Nonzeros(data []float64) int {
	n := 0
	for _, v := range data {
		if v != 0 {
			n++
		}
	}
	return n
}
