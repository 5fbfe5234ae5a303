package metrics

import (
	"github.com/san-kum/slabtherm/internal/slab"
	"github.com/san-kum/slabtherm/internal/thermal"
)

// Stability reports the fraction of observed steps whose field was entirely
// finite. Anything below 1.0 means the timestep precondition was violated.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string { return s.name }

func (s *Stability) Observe(f thermal.Field, step int) {
	s.samples++
	if !f.IsFinite() {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Defaults is the metric set attached to a standard run.
func Defaults(p thermal.Parameters) []slab.Metric {
	return []slab.Metric{
		NewTemperatureBounds(p.TSlab, p.TMantle),
		NewSlabDepth(p),
		NewStability(),
	}
}
