package metrics

import "github.com/san-kum/slabtherm/internal/thermal"

// SlabDepth reports how deep the cold slab reaches, in km: the deepest row
// whose mean temperature across the slab column span is closer to the slab
// temperature than to the mantle.
type SlabDepth struct {
	name     string
	p        thermal.Parameters
	deepest  int
	observed bool
}

func NewSlabDepth(p thermal.Parameters) *SlabDepth {
	return &SlabDepth{name: "slab_depth_km", p: p}
}

func (s *SlabDepth) Name() string { return s.name }

func (s *SlabDepth) Observe(f thermal.Field, step int) {
	if d := DeepestColdRow(f, s.p); d > s.deepest || !s.observed {
		s.deepest = d
		s.observed = true
	}
}

func (s *SlabDepth) Value() float64 {
	if !s.observed || s.deepest < 0 {
		return 0
	}
	return float64(s.deepest) * s.p.Dy
}

func (s *SlabDepth) Reset() {
	s.deepest = 0
	s.observed = false
}

// DeepestColdRow scans from the bottom up for the first row whose slab-span
// mean is below the midpoint between slab and mantle temperature. Returns -1
// when no row qualifies.
func DeepestColdRow(f thermal.Field, p thermal.Parameters) int {
	mid := p.TSlab + (p.TMantle-p.TSlab)/2
	for r := f.Rows - 1; r >= 0; r-- {
		sum := 0.0
		row := f.Row(r)
		for c := p.SlabColMin; c <= p.SlabColMax; c++ {
			sum += row[c]
		}
		if sum/float64(p.SlabColMax-p.SlabColMin+1) < mid {
			return r
		}
	}
	return -1
}
