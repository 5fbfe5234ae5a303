package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/slabtherm/internal/slab"
	"github.com/san-kum/slabtherm/internal/thermal"
)

type exportSnapshot struct {
	Step  int         `json:"step"`
	Label string      `json:"label"`
	Grid  [][]float64 `json:"grid"`
}

type ExportData struct {
	ID         string             `json:"id"`
	Parameters thermal.Parameters `json:"parameters"`
	Dt         float64            `json:"dt"`
	StepsTaken int                `json:"steps_taken"`
	Metrics    map[string]float64 `json:"metrics"`
	Snapshots  []exportSnapshot   `json:"snapshots"`
}

// ExportJSON writes a run with its full snapshot grids as a single document.
func ExportJSON(w io.Writer, id string, p thermal.Parameters, dt float64, result *slab.Result) error {
	data := ExportData{
		ID:         id,
		Parameters: p,
		Dt:         dt,
		StepsTaken: result.StepsTaken,
		Metrics:    result.Metrics,
		Snapshots:  make([]exportSnapshot, 0, len(result.Snapshots)),
	}

	for _, sn := range result.Snapshots {
		grid := make([][]float64, sn.Field.Rows)
		for r := range grid {
			grid[r] = append([]float64(nil), sn.Field.Row(r)...)
		}
		data.Snapshots = append(data.Snapshots, exportSnapshot{
			Step:  sn.Step,
			Label: sn.Label,
			Grid:  grid,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportRunJSON re-exports a stored run to stdout.
func (s *Store) ExportRunJSON(runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	result := &slab.Result{
		Metrics:    meta.Metrics,
		StepsTaken: meta.StepsTaken,
	}
	for _, sn := range meta.Snapshots {
		field, err := s.LoadGrid(runID, sn.Step)
		if err != nil {
			return err
		}
		result.Snapshots = append(result.Snapshots, slab.Snapshot{
			Step:  sn.Step,
			Label: sn.Label,
			Field: field,
		})
	}

	return ExportJSON(os.Stdout, meta.ID, meta.Parameters, meta.Dt, result)
}
