package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/slabtherm/internal/slab"
	"github.com/san-kum/slabtherm/internal/thermal"
)

// Store persists runs under a base directory, one subdirectory per run with
// a metadata.json and one grid CSV per recorded snapshot.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SnapshotMeta struct {
	Step  int    `json:"step"`
	Label string `json:"label"`
	File  string `json:"file"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Parameters thermal.Parameters `json:"parameters"`
	Dt         float64            `json:"dt"`
	StepsTaken int                `json:"steps_taken"`
	Metrics    map[string]float64 `json:"metrics"`
	Snapshots  []SnapshotMeta     `json:"snapshots"`
}

func (s *Store) Save(p thermal.Parameters, dt float64, result *slab.Result) (string, error) {
	runID := fmt.Sprintf("slab_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Parameters: p,
		Dt:         dt,
		StepsTaken: result.StepsTaken,
		Metrics:    result.Metrics,
	}

	for _, sn := range result.Snapshots {
		file := fmt.Sprintf("grid_%03d.csv", sn.Step)
		if err := writeGrid(filepath.Join(runDir, file), sn.Field); err != nil {
			return "", err
		}
		meta.Snapshots = append(meta.Snapshots, SnapshotMeta{
			Step:  sn.Step,
			Label: sn.Label,
			File:  file,
		})
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

func writeGrid(path string, f thermal.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	row := make([]string, f.Cols)
	for r := 0; r < f.Rows; r++ {
		cells := f.Row(r)
		for c, v := range cells {
			row[c] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

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

// LoadGrid reads back the snapshot grid recorded for a step index.
func (s *Store) LoadGrid(runID string, step int) (thermal.Field, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return thermal.Field{}, err
	}

	var file string
	for _, sn := range meta.Snapshots {
		if sn.Step == step {
			file = sn.File
			break
		}
	}
	if file == "" {
		return thermal.Field{}, fmt.Errorf("%w: %d", thermal.ErrNoSnapshot, step)
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, file))
	if err != nil {
		return thermal.Field{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return thermal.Field{}, err
	}
	if len(records) == 0 {
		return thermal.Field{}, fmt.Errorf("empty grid file %s", file)
	}

	field := thermal.NewField(len(records), len(records[0]), 0)
	for i, rec := range records {
		for j, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return thermal.Field{}, fmt.Errorf("grid file %s row %d: %w", file, i, err)
			}
			field.Set(i, j, v)
		}
	}
	return field, nil
}
