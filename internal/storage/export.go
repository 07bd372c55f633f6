package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportMatrix struct {
	Articulation string      `json:"articulation"`
	Rows         [][]float64 `json:"rows"`
}

type ExportData struct {
	Name     string             `json:"name"`
	Backend  string             `json:"backend"`
	Joints   int                `json:"joints"`
	Dofs     int                `json:"dofs"`
	Parents  []int              `json:"parents"`
	QdStart  []int              `json:"qd_start"`
	Jacobian []ExportMatrix     `json:"jacobian,omitempty"`
	Mass     []ExportMatrix     `json:"mass,omitempty"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

func exportData(a *Assembly) ExportData {
	m := a.Model
	data := ExportData{
		Name:    a.Name,
		Backend: a.Backend,
		Joints:  m.JointCount(),
		Dofs:    m.DofCount(),
		Parents: m.Parents,
		QdStart: m.QdStart,
		Metrics: a.Metrics,
	}

	if a.Jacobian != nil {
		l := m.JacobianLayout()
		for ai, art := range m.Articulations {
			data.Jacobian = append(data.Jacobian, ExportMatrix{
				Articulation: art.Name,
				Rows:         split(a.Jacobian[l.Starts[ai]:], l.Rows[ai], l.Cols[ai]),
			})
		}
	}
	if a.Mass != nil {
		l := m.MassLayout()
		for ai, art := range m.Articulations {
			data.Mass = append(data.Mass, ExportMatrix{
				Articulation: art.Name,
				Rows:         split(a.Mass[l.Starts[ai]:], l.Rows[ai], l.Cols[ai]),
			})
		}
	}
	return data
}

func split(flat []float64, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		out[r] = flat[r*cols : (r+1)*cols]
	}
	return out
}

func WriteJSON(w io.Writer, a *Assembly) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(a))
}

// ExportJSON writes the assembly as one JSON document to path, or to
// stdout when path is "-".
func ExportJSON(path string, a *Assembly) error {
	if path == "-" {
		return WriteJSON(os.Stdout, a)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, a)
}
