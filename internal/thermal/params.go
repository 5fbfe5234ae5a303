package thermal

import "fmt"

// Each step advances model time by this many thousand years in the output
// labels. The label scale is fixed by the figure convention, not derived
// from dt.
const KaPerStep = 10

// Parameters fixes a simulation run at construction time. Width/Height and
// the grid spacing are in km; Diffusivity is in m²/s and SinkRate in m/yr,
// both inherited unconverted from the reference model.
type Parameters struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Dx     float64 `json:"dx" yaml:"dx"`
	Dy     float64 `json:"dy" yaml:"dy"`

	Diffusivity   float64 `json:"diffusivity" yaml:"diffusivity"`
	SinkRate      float64 `json:"sink_rate" yaml:"sink_rate"`
	SlabThickness float64 `json:"slab_thickness" yaml:"slab_thickness"`

	// Slab column span, inclusive on both ends. SlabRow is the emplacement
	// row the slab is fed from.
	SlabColMin int `json:"slab_col_min" yaml:"slab_col_min"`
	SlabColMax int `json:"slab_col_max" yaml:"slab_col_max"`
	SlabRow    int `json:"slab_row" yaml:"slab_row"`

	TSlab   float64 `json:"t_slab" yaml:"t_slab"`
	TMantle float64 `json:"t_mantle" yaml:"t_mantle"`

	Steps         int   `json:"steps" yaml:"steps"`
	SnapshotSteps []int `json:"snapshot_steps" yaml:"snapshot_steps"`

	// Dt overrides the derived timestep when non-zero. The scheme diverges
	// when it exceeds StableDt; that is a precondition, not a checked error.
	Dt float64 `json:"dt,omitempty" yaml:"dt,omitempty"`
}

// Default mirrors the reference subduction run: a 100×100 km domain at 1 km
// spacing, oceanic-lithosphere diffusivity, slab across columns 25..74, with
// four snapshot figures.
func Default() Parameters {
	return Parameters{
		Width:         100,
		Height:        100,
		Dx:            1,
		Dy:            1,
		Diffusivity:   8.7e7,
		SinkRate:      0.1,
		SlabThickness: 50,
		SlabColMin:    25,
		SlabColMax:    74,
		SlabRow:       1,
		TSlab:         0,
		TMantle:       1300,
		Steps:         100,
		SnapshotSteps: []int{0, 10, 50, 99},
	}
}

// NX is the number of grid columns, NY the number of rows.
func (p Parameters) NX() int { return int(p.Width / p.Dx) }
func (p Parameters) NY() int { return int(p.Height / p.Dy) }

// StableDt is the largest timestep for which the explicit 5-point scheme
// stays bounded: dx²dy² / (2K(dx²+dy²)).
func (p Parameters) StableDt() float64 {
	dx2, dy2 := p.Dx*p.Dx, p.Dy*p.Dy
	return dx2 * dy2 / (2 * p.Diffusivity * (dx2 + dy2))
}

// EffectiveDt is the timestep the simulator actually uses.
func (p Parameters) EffectiveDt() float64 {
	if p.Dt != 0 {
		return p.Dt
	}
	return p.StableDt()
}

// TimeLabel is the figure caption for a step index.
func (p Parameters) TimeLabel(step int) string {
	return fmt.Sprintf("%d ka", step*KaPerStep)
}

func (p Parameters) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: domain %gx%g km", ErrBadParameters, p.Width, p.Height)
	}
	if p.Dx <= 0 || p.Dy <= 0 {
		return fmt.Errorf("%w: spacing %gx%g km", ErrBadParameters, p.Dx, p.Dy)
	}
	if p.Diffusivity <= 0 {
		return fmt.Errorf("%w: diffusivity %g", ErrBadParameters, p.Diffusivity)
	}
	nx, ny := p.NX(), p.NY()
	if nx < 3 || ny < 3 {
		return fmt.Errorf("%w: grid %dx%d too small for interior stencil", ErrBadParameters, nx, ny)
	}
	if p.SlabRow < 1 || p.SlabRow >= ny-1 {
		return fmt.Errorf("%w: slab row %d outside interior", ErrBadParameters, p.SlabRow)
	}
	if p.SlabColMin < 1 || p.SlabColMax >= nx-1 || p.SlabColMin > p.SlabColMax {
		return fmt.Errorf("%w: slab span [%d,%d]", ErrBadParameters, p.SlabColMin, p.SlabColMax)
	}
	if p.Steps < 0 {
		return fmt.Errorf("%w: %d steps", ErrBadParameters, p.Steps)
	}
	for _, s := range p.SnapshotSteps {
		if s < 0 || (p.Steps > 0 && s >= p.Steps) {
			return fmt.Errorf("%w: snapshot step %d outside run of %d steps", ErrBadParameters, s, p.Steps)
		}
	}
	return nil
}
