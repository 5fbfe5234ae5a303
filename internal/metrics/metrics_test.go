package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/slabtherm/internal/thermal"
)

func TestTemperatureBoundsClean(t *testing.T) {
	m := NewTemperatureBounds(0, 1300)

	f := thermal.NewField(4, 4, 1300)
	f.Set(1, 1, 0)
	m.Observe(f, 0)

	if m.Value() != 0 {
		t.Errorf("expected no excursion, got %f", m.Value())
	}
}

func TestTemperatureBoundsExcursion(t *testing.T) {
	m := NewTemperatureBounds(0, 1300)

	f := thermal.NewField(4, 4, 1300)
	f.Set(1, 1, 1450)
	m.Observe(f, 0)
	f.Set(2, 2, -50)
	m.Observe(f, 1)

	if m.Value() != 150 {
		t.Errorf("expected max excursion 150, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero after reset, got %f", m.Value())
	}
}

func TestSlabDepth(t *testing.T) {
	p := thermal.Default()
	m := NewSlabDepth(p)

	f := thermal.NewField(p.NY(), p.NX(), p.TMantle)
	for r := 1; r <= 5; r++ {
		for c := p.SlabColMin; c <= p.SlabColMax; c++ {
			f.Set(r, c, p.TSlab)
		}
	}
	m.Observe(f, 0)

	if m.Value() != 5*p.Dy {
		t.Errorf("expected depth %g km, got %g", 5*p.Dy, m.Value())
	}

	// A shallower later field must not reduce the reported maximum.
	shallow := thermal.NewField(p.NY(), p.NX(), p.TMantle)
	for c := p.SlabColMin; c <= p.SlabColMax; c++ {
		shallow.Set(1, c, p.TSlab)
	}
	m.Observe(shallow, 1)

	if m.Value() != 5*p.Dy {
		t.Errorf("expected depth to stay %g km, got %g", 5*p.Dy, m.Value())
	}
}

func TestDeepestColdRowNone(t *testing.T) {
	p := thermal.Default()
	f := thermal.NewField(p.NY(), p.NX(), p.TMantle)

	if got := DeepestColdRow(f, p); got != -1 {
		t.Errorf("expected -1 for all-mantle field, got %d", got)
	}
}

func TestStability(t *testing.T) {
	m := NewStability()

	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 with no samples, got %f", m.Value())
	}

	good := thermal.NewField(3, 3, 100)
	bad := good.Clone()
	bad.Set(1, 1, math.NaN())

	m.Observe(good, 0)
	m.Observe(bad, 1)

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	p := thermal.Default()
	ms := Defaults(p)

	if len(ms) != 3 {
		t.Fatalf("expected 3 default metrics, got %d", len(ms))
	}

	names := map[string]bool{}
	for _, m := range ms {
		names[m.Name()] = true
	}
	for _, want := range []string{"bounds_excursion", "slab_depth_km", "stability"} {
		if !names[want] {
			t.Errorf("missing default metric %s", want)
		}
	}
}
