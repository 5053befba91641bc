package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/san-kum/pendsim/internal/sim"
)

type ExportData struct {
	RunMetadata
	Components []string    `json:"components"`
	Times      []float64   `json:"times"`
	States     [][]float64 `json:"states"`
	Controls   [][]float64 `json:"controls"`
	Energies   [][]float64 `json:"energies"`
}

// ExportJSON writes a run and its full trajectory as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		RunMetadata: meta,
		Components:  result.Components,
		Times:       result.Times,
		States:      make([][]float64, len(result.States)),
		Controls:    make([][]float64, len(result.Controls)),
		Energies:    result.Breakdowns,
	}

	for i, s := range result.States {
		data.States[i] = s
	}
	for i, c := range result.Controls {
		data.Controls[i] = c
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes the same per-step table Save archives as series.csv.
func ExportCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := writeSeries(cw, result); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
