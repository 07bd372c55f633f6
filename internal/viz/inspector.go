package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/spatialdyn/internal/articulation"
)

// Inspector pages through the assembled matrices of a Model one joint at a
// time.
type Inspector struct {
	title  string
	model  *articulation.Model
	jac    []float64
	mass   []float64
	jl, ml articulation.Layout
	art    int
	joint  int
	theme  int
	showM  bool
	width  int
}

// NewInspector wraps already assembled J and M buffers laid out by the
// model's JacobianLayout and MassLayout. M may be nil.
func NewInspector(title string, m *articulation.Model, J, M []float64) Inspector {
	return Inspector{
		title: title,
		model: m,
		jac:   J,
		mass:  M,
		jl:    m.JacobianLayout(),
		ml:    m.MassLayout(),
		width: 80,
	}
}

func (m Inspector) Init() tea.Cmd { return nil }

func (m Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.joint > 0 {
				m.joint--
			}
		case "down", "j":
			if m.joint < m.model.Articulations[m.art].JointCount-1 {
				m.joint++
			}
		case "left", "h":
			if m.art > 0 {
				m.art--
				m.joint = 0
			}
		case "right", "l":
			if m.art < len(m.model.Articulations)-1 {
				m.art++
				m.joint = 0
			}
		case "m":
			if m.mass != nil {
				m.showM = !m.showM
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// Selected returns the current articulation and local joint index.
func (m Inspector) Selected() (art, joint int) { return m.art, m.joint }

func (m Inspector) View() string {
	if len(m.model.Articulations) == 0 {
		return Subtle.Render("no articulations") + "\n"
	}

	theme := Themes[m.theme]
	a := m.model.Articulations[m.art]
	global := a.JointStart + m.joint

	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(Metric("articulation", fmt.Sprintf("%s (%d/%d)", a.Name, m.art+1, len(m.model.Articulations))) + "\n")
	s.WriteString(Metric("joint", fmt.Sprintf("%s (%d/%d)", m.jointName(global), m.joint+1, a.JointCount)) + "\n")
	s.WriteString(Metric("theme", theme.Name) + "\n")
	s.WriteString(Separator(min(m.width, 60)) + "\n")

	if m.showM {
		s.WriteString(m.block(m.mass, m.ml, theme))
	} else {
		s.WriteString(m.block(m.jac, m.jl, theme))
	}

	s.WriteString("\n" + KeyHint.Render("↑↓ joint  ←→ articulation  m jacobian/mass  t theme  q quit") + "\n")
	return s.String()
}

func (m Inspector) jointName(global int) string {
	if global < len(m.model.JointNames) && m.model.JointNames[global] != "" {
		return m.model.JointNames[global]
	}
	return fmt.Sprintf("#%d", global)
}

// block renders the six rows of the selected joint followed by the
// sparsity pattern of the whole articulation matrix.
func (m Inspector) block(data []float64, l articulation.Layout, theme Theme) string {
	rows, cols := l.Rows[m.art], l.Cols[m.art]
	mat := data[l.Starts[m.art] : l.Starts[m.art]+rows*cols]

	var s strings.Builder
	labels := [6]string{"wx", "wy", "wz", "vx", "vy", "vz"}
	for k := 0; k < 6; k++ {
		row := mat[(m.joint*6+k)*cols : (m.joint*6+k+1)*cols]
		s.WriteString(MetricLabel.Render(labels[k]))
		for _, v := range row {
			fmt.Fprintf(&s, "%8.3f", v)
		}
		s.WriteByte('\n')
	}
	s.WriteByte('\n')
	s.WriteString(Panel.Render(strings.TrimRight(RenderSparsity(mat, rows, cols, 6, theme), "\n")))
	return s.String()
}
