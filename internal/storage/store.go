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

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

// Store archives finished runs under baseDir, one directory per run. Runs
// are written once and only read back for listing, plotting and export.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Links       int                `json:"links"`
	Compound    bool               `json:"compound"`
	Gravity     float64            `json:"gravity"`
	Lengths     []float64          `json:"lengths"`
	Masses      []float64          `json:"masses"`
	Thetas      []float64          `json:"thetas"`
	Omegas      []float64          `json:"omegas"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Integrator  string             `json:"integrator"`
	Controller  string             `json:"controller"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Params rebuilds the initial configuration of the run. It is used for
// geometry of recorded states, never to resume a run.
func (m *RunMetadata) Params() (physics.Params, error) {
	method, err := integrators.ParseMethod(m.Integrator)
	if err != nil {
		return physics.Params{}, err
	}
	g := m.Gravity
	return physics.Params{
		Lengths:  m.Lengths,
		Masses:   m.Masses,
		Thetas:   m.Thetas,
		Omegas:   m.Omegas,
		Method:   method,
		Compound: m.Compound,
		Gravity:  &g,
	}, nil
}

// Series is the per-step table of a run: time, angles, angular velocities,
// torque and energy components.
type Series struct {
	Columns []string
	Rows    [][]float64
}

// Column returns one named column, or nil if the series has no such column.
func (s *Series) Column(name string) []float64 {
	idx := -1
	for i, c := range s.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	col := make([]float64, len(s.Rows))
	for i, row := range s.Rows {
		if idx < len(row) {
			col[i] = row[idx]
		}
	}
	return col
}

// NewMetadata describes a finished run of cfg. ID is filled in by Save.
func NewMetadata(cfg *config.Config, result *sim.Result) RunMetadata {
	name := cfg.Name
	if name == "" {
		name = "pendulum"
	}
	meta := RunMetadata{
		Name:        name,
		Timestamp:   time.Now(),
		Links:       len(cfg.Links),
		Compound:    cfg.Compound,
		Gravity:     cfg.EffectiveGravity(),
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Steps:       result.StepsTaken,
		Integrator:  cfg.Integrator,
		Controller:  cfg.Controller,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}
	for _, l := range cfg.Links {
		meta.Lengths = append(meta.Lengths, l.Length)
		meta.Masses = append(meta.Masses, l.Mass)
		meta.Thetas = append(meta.Thetas, l.Theta)
		meta.Omegas = append(meta.Omegas, l.Omega)
	}
	return meta
}

func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	meta := NewMetadata(cfg, result)
	runID := fmt.Sprintf("%s_%d", meta.Name, meta.Timestamp.UnixNano())
	meta.ID = runID
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := ExportCSV(csvFile, result); err != nil {
		return "", err
	}

	return runID, nil
}

// SeriesColumns names the series columns for a run of n links.
func SeriesColumns(n int, components []string) []string {
	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("theta_%d", i))
	}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("omega_%d", i))
	}
	header = append(header, "torque")
	return append(header, components...)
}

func writeSeries(w *csv.Writer, result *sim.Result) error {
	if len(result.States) == 0 {
		return nil
	}

	n := len(result.States[0]) / 2
	if err := w.Write(SeriesColumns(n, result.Components)); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{formatFloat(result.Times[i])}
		for _, val := range result.States[i] {
			row = append(row, formatFloat(val))
		}

		// The torque column holds what was applied over the step that
		// starts at this row; the final row has none.
		tau := 0.0
		if i < len(result.Controls) {
			tau, _ = result.Controls[i].Torque()
		}
		row = append(row, formatFloat(tau))

		if i < len(result.Breakdowns) {
			for _, val := range result.Breakdowns[i] {
				row = append(row, formatFloat(val))
			}
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the archived runs, oldest first. Directories without
// readable metadata are skipped.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// Latest returns the most recently archived run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, errors.New("no runs found")
	}
	return &runs[len(runs)-1], nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) == 0 {
		return series, nil
	}
	series.Columns = records[0]
	series.Rows = make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		row := make([]float64, len(record))
		for j, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s row %d column %q: %w", runID, i, series.Columns[j], err)
			}
			row[j] = val
		}
		series.Rows = append(series.Rows, row)
	}

	return series, nil
}

// LoadResult rebuilds the recorded trajectory of a run from its series. The
// result is for inspection and export only.
func (s *Store) LoadResult(runID string) (*RunMetadata, *sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}

	n := meta.Links
	fixed := 1 + 2*n + 1
	if len(series.Columns) < fixed {
		return nil, nil, fmt.Errorf("run %s: series has %d columns, want at least %d", runID, len(series.Columns), fixed)
	}

	result := &sim.Result{
		States:      make([]dynamo.State, 0, len(series.Rows)),
		Controls:    make([]dynamo.Control, 0, len(series.Rows)),
		Times:       make([]float64, 0, len(series.Rows)),
		Energies:    make([]float64, 0, len(series.Rows)),
		Components:  series.Columns[fixed:],
		Breakdowns:  make([][]float64, 0, len(series.Rows)),
		Metrics:     meta.Metrics,
		EnergyDrift: meta.EnergyDrift,
		StepsTaken:  meta.Steps,
	}
	for i, row := range series.Rows {
		if len(row) < fixed {
			return nil, nil, fmt.Errorf("run %s: row %d is short", runID, i+1)
		}
		result.Times = append(result.Times, row[0])
		result.States = append(result.States, dynamo.State(row[1:1+2*n]))
		if i < len(series.Rows)-1 {
			result.Controls = append(result.Controls, dynamo.Control{row[1+2*n]})
		}
		energies := row[fixed:]
		result.Breakdowns = append(result.Breakdowns, energies)
		if len(energies) > 0 {
			result.Energies = append(result.Energies, energies[len(energies)-1])
		}
	}
	return meta, result, nil
}
