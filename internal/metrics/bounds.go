package metrics

import (
	"math"

	"github.com/san-kum/slabtherm/internal/thermal"
)

// TemperatureBounds tracks the largest excursion of any cell outside the
// [low, high] window. A stable run of the explicit scheme reports zero.
type TemperatureBounds struct {
	name      string
	low, high float64
	excursion float64
	samples   int
}

func NewTemperatureBounds(low, high float64) *TemperatureBounds {
	return &TemperatureBounds{name: "bounds_excursion", low: low, high: high}
}

func (b *TemperatureBounds) Name() string { return b.name }

func (b *TemperatureBounds) Observe(f thermal.Field, step int) {
	min, max := f.MinMax()
	if d := b.low - min; d > b.excursion {
		b.excursion = d
	}
	if d := max - b.high; d > b.excursion {
		b.excursion = d
	}
	if math.IsNaN(min) || math.IsNaN(max) {
		b.excursion = math.Inf(1)
	}
	b.samples++
}

func (b *TemperatureBounds) Value() float64 { return b.excursion }

func (b *TemperatureBounds) Reset() {
	b.excursion = 0
	b.samples = 0
}
