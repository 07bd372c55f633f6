package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/spatialdyn/internal/articulation"
)

// Matrix kinds stored per run.
const (
	Jacobian = "jacobian"
	Mass     = "mass"
)

var ErrNoMatrix = errors.New("storage: matrix not stored")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Assembly is one assembled batch. Either matrix may be nil.
type Assembly struct {
	Name     string
	Backend  string
	Seed     int64
	Model    *articulation.Model
	Jacobian []float64
	Mass     []float64
	Metrics  map[string]float64
}

type Shape struct {
	Name   string `json:"name"`
	Joints int    `json:"joints"`
	Dofs   int    `json:"dofs"`
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Timestamp     time.Time          `json:"timestamp"`
	Backend       string             `json:"backend"`
	Seed          int64              `json:"seed"`
	Joints        int                `json:"joints"`
	Dofs          int                `json:"dofs"`
	Articulations []Shape            `json:"articulations"`
	Matrices      []string           `json:"matrices"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and one csv per stored matrix into a new run
// directory and returns the run id.
func (s *Store) Save(a *Assembly) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", a.Name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	m := a.Model
	meta := RunMetadata{
		ID:        runID,
		Name:      a.Name,
		Timestamp: now,
		Backend:   a.Backend,
		Seed:      a.Seed,
		Joints:    m.JointCount(),
		Dofs:      m.DofCount(),
		Metrics:   a.Metrics,
	}
	for _, art := range m.Articulations {
		start, end := art.DofRange(m.QdStart)
		meta.Articulations = append(meta.Articulations, Shape{Name: art.Name, Joints: art.JointCount, Dofs: end - start})
	}

	if a.Jacobian != nil {
		if err := writeMatrix(filepath.Join(runDir, Jacobian+".csv"), a.Jacobian, m.JacobianLayout()); err != nil {
			return "", err
		}
		meta.Matrices = append(meta.Matrices, Jacobian)
	}
	if a.Mass != nil {
		if err := writeMatrix(filepath.Join(runDir, Mass+".csv"), a.Mass, m.MassLayout()); err != nil {
			return "", err
		}
		meta.Matrices = append(meta.Matrices, Mass)
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	return runID, nil
}

// writeMatrix stores one record per matrix row: articulation index, row
// index, then the row's values at full precision.
func writeMatrix(path string, data []float64, layout articulation.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"articulation", "row", "values"}); err != nil {
		return err
	}

	for ai, start := range layout.Starts {
		rows, cols := layout.Rows[ai], layout.Cols[ai]
		for r := 0; r < rows; r++ {
			record := make([]string, 0, cols+2)
			record = append(record, strconv.Itoa(ai), strconv.Itoa(r))
			for c := 0; c < cols; c++ {
				record = append(record, strconv.FormatFloat(data[start+r*cols+c], 'g', -1, 64))
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadMatrix reads matrix kind of articulation art back as rows.
func (s *Store) LoadMatrix(runID, kind string, art int) ([][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, kind+".csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s in %s", ErrNoMatrix, kind, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var rows [][]float64
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		ai, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", kind, i+1, err)
		}
		if ai != art {
			continue
		}

		row := make([]float64, 0, len(record)-2)
		for _, field := range record[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", kind, i+1, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	if rows == nil {
		return nil, fmt.Errorf("%w: %s articulation %d in %s", ErrNoMatrix, kind, art, runID)
	}
	return rows, nil
}
