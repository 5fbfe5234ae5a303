package thermal

import (
	"errors"
	"math"
	"testing"
)

func TestStableDt(t *testing.T) {
	p := Default()

	// dx²dy² / (2K(dx²+dy²)) with 1 km spacing
	expected := 1.0 / (2 * p.Diffusivity * 2)
	if math.Abs(p.StableDt()-expected) > expected*1e-12 {
		t.Errorf("expected dt %e, got %e", expected, p.StableDt())
	}
}

func TestEffectiveDtOverride(t *testing.T) {
	p := Default()
	if p.EffectiveDt() != p.StableDt() {
		t.Error("zero Dt should derive the stable timestep")
	}

	p.Dt = 0.5
	if p.EffectiveDt() != 0.5 {
		t.Errorf("expected override 0.5, got %f", p.EffectiveDt())
	}
}

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default parameters should validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"zero width", func(p *Parameters) { p.Width = 0 }},
		{"negative spacing", func(p *Parameters) { p.Dx = -1 }},
		{"zero diffusivity", func(p *Parameters) { p.Diffusivity = 0 }},
		{"tiny grid", func(p *Parameters) { p.Width, p.Height = 2, 2 }},
		{"slab row on boundary", func(p *Parameters) { p.SlabRow = 0 }},
		{"slab span touching edge", func(p *Parameters) { p.SlabColMin = 0 }},
		{"inverted slab span", func(p *Parameters) { p.SlabColMin, p.SlabColMax = 70, 20 }},
		{"negative steps", func(p *Parameters) { p.Steps = -1 }},
		{"snapshot past run", func(p *Parameters) { p.SnapshotSteps = []int{100} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrBadParameters) {
				t.Errorf("expected ErrBadParameters, got %v", err)
			}
		})
	}
}

func TestTimeLabel(t *testing.T) {
	p := Default()
	if got := p.TimeLabel(0); got != "0 ka" {
		t.Errorf("expected '0 ka', got %q", got)
	}
	if got := p.TimeLabel(99); got != "990 ka" {
		t.Errorf("expected '990 ka', got %q", got)
	}
}

func TestGridDims(t *testing.T) {
	p := Default()
	if p.NX() != 100 || p.NY() != 100 {
		t.Errorf("expected 100x100, got %dx%d", p.NY(), p.NX())
	}

	p.Dx, p.Dy = 2, 2
	if p.NX() != 50 || p.NY() != 50 {
		t.Errorf("expected 50x50, got %dx%d", p.NY(), p.NX())
	}
}
