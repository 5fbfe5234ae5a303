package config

import "github.com/san-kum/slabtherm/internal/thermal"

// Presets are complete parameter sets; "classic" is the reference run the
// model was built around.
var Presets = map[string]*Config{
	"classic": fromParameters(thermal.Default()),
	"coarse": {
		Width: 100, Height: 100, Dx: 2, Dy: 2,
		Diffusivity: 8.7e7, SinkRate: 0.1, SlabThickness: 50,
		SlabColMin: 12, SlabColMax: 37, SlabRow: 1,
		TSlab: 0, TMantle: 1300,
		Steps: 48, SnapshotSteps: []int{0, 10, 25, 47},
	},
	"deep": {
		Width: 100, Height: 200, Dx: 1, Dy: 1,
		Diffusivity: 8.7e7, SinkRate: 0.1, SlabThickness: 50,
		SlabColMin: 25, SlabColMax: 74, SlabRow: 1,
		TSlab: 0, TMantle: 1300,
		Steps: 190, SnapshotSteps: []int{0, 50, 120, 189},
	},
	"wide": {
		Width: 100, Height: 100, Dx: 1, Dy: 1,
		Diffusivity: 8.7e7, SinkRate: 0.1, SlabThickness: 70,
		SlabColMin: 15, SlabColMax: 84, SlabRow: 1,
		TSlab: 0, TMantle: 1300,
		Steps: 100, SnapshotSteps: []int{0, 10, 50, 99},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
