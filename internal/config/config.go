package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/slabtherm/internal/thermal"
)

// Config is the yaml surface over thermal.Parameters. Loading starts from
// the classic-run defaults, so a config file only needs the fields it
// changes.
type Config struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Dx     float64 `yaml:"dx"`
	Dy     float64 `yaml:"dy"`

	Diffusivity   float64 `yaml:"diffusivity"`
	SinkRate      float64 `yaml:"sink_rate"`
	SlabThickness float64 `yaml:"slab_thickness"`

	SlabColMin int `yaml:"slab_col_min"`
	SlabColMax int `yaml:"slab_col_max"`
	SlabRow    int `yaml:"slab_row"`

	TSlab   float64 `yaml:"t_slab"`
	TMantle float64 `yaml:"t_mantle"`

	Steps         int   `yaml:"steps"`
	SnapshotSteps []int `yaml:"snapshot_steps"`

	// Dt overrides the derived stable timestep when non-zero.
	Dt float64 `yaml:"dt"`
}

func DefaultConfig() *Config {
	return fromParameters(thermal.Default())
}

func fromParameters(p thermal.Parameters) *Config {
	return &Config{
		Width:         p.Width,
		Height:        p.Height,
		Dx:            p.Dx,
		Dy:            p.Dy,
		Diffusivity:   p.Diffusivity,
		SinkRate:      p.SinkRate,
		SlabThickness: p.SlabThickness,
		SlabColMin:    p.SlabColMin,
		SlabColMax:    p.SlabColMax,
		SlabRow:       p.SlabRow,
		TSlab:         p.TSlab,
		TMantle:       p.TMantle,
		Steps:         p.Steps,
		SnapshotSteps: append([]int(nil), p.SnapshotSteps...),
		Dt:            p.Dt,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters converts the config to a validated parameter set.
func (c *Config) Parameters() (thermal.Parameters, error) {
	p := thermal.Parameters{
		Width:         c.Width,
		Height:        c.Height,
		Dx:            c.Dx,
		Dy:            c.Dy,
		Diffusivity:   c.Diffusivity,
		SinkRate:      c.SinkRate,
		SlabThickness: c.SlabThickness,
		SlabColMin:    c.SlabColMin,
		SlabColMax:    c.SlabColMax,
		SlabRow:       c.SlabRow,
		TSlab:         c.TSlab,
		TMantle:       c.TMantle,
		Steps:         c.Steps,
		SnapshotSteps: append([]int(nil), c.SnapshotSteps...),
		Dt:            c.Dt,
	}
	if err := p.Validate(); err != nil {
		return thermal.Parameters{}, err
	}
	return p, nil
}
