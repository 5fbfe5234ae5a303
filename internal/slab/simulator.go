package slab

import (
	"context"
	"fmt"

	"github.com/san-kum/slabtherm/internal/thermal"
)

// Metric observes the field after every completed step and reduces it to a
// single value for the run summary.
type Metric interface {
	Name() string
	Observe(f thermal.Field, step int)
	Value() float64
	Reset()
}

// Observer is notified after every completed step. The field passed in is
// simulator-owned; observers must not retain or mutate it.
type Observer interface {
	OnStep(f thermal.Field, step int)
}

// Snapshot is a detached copy of the field at one requested step, with the
// figure label and the fixed color-scale bounds the renderer needs.
type Snapshot struct {
	Step  int
	Label string
	Field thermal.Field
}

// Result collects the requested snapshots and metric summaries of a run.
type Result struct {
	Snapshots  []Snapshot
	Metrics    map[string]float64
	StepsTaken int
}

// Simulator owns two temperature grids and advances them through discrete
// steps: a rigid downward shift of the slab column followed by an explicit
// 5-point diffusion update. The stencil reads prev and writes next, so a
// step never sees its own partial writes.
type Simulator struct {
	p    thermal.Parameters
	dt   float64
	prev thermal.Field
	next thermal.Field
	step int

	metrics   []Metric
	observers []Observer
}

// New allocates the grids at mantle temperature and emplaces the initial
// slab span at the feed row.
func New(p thermal.Parameters) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	prev := thermal.NewField(p.NY(), p.NX(), p.TMantle)
	for c := p.SlabColMin; c <= p.SlabColMax; c++ {
		prev.Set(p.SlabRow, c, p.TSlab)
	}
	return &Simulator{
		p:    p,
		dt:   p.EffectiveDt(),
		prev: prev,
		next: prev.Clone(),
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Params() thermal.Parameters { return s.p }
func (s *Simulator) Dt() float64                { return s.dt }

// StepIndex is the number of completed steps.
func (s *Simulator) StepIndex() int { return s.step }

// Snapshot returns a detached copy of the current field. It never mutates
// simulator state.
func (s *Simulator) Snapshot() thermal.Field { return s.prev.Clone() }

// Step advances the field by one timestep: advection first, then diffusion.
// The order is fixed; diffusion reads the post-advection state.
func (s *Simulator) Step() {
	s.advect()
	s.diffuse()
	s.step++
}

// advect sinks the slab by one row: every slab-span row from the feed row
// down to the current front takes the value the row above held, and the feed
// row is reset to TSlab. The front deepens by one row per step, so earlier
// slab material is never erased, only pushed down.
func (s *Simulator) advect() {
	lo, hi := s.p.SlabColMin, s.p.SlabColMax
	top := s.p.SlabRow
	front := top + s.step + 1
	if last := s.prev.Rows - 1; front > last {
		front = last
	}
	for r := front; r > top; r-- {
		copy(s.prev.Row(r)[lo:hi+1], s.prev.Row(r-1)[lo:hi+1])
	}
	for c := lo; c <= hi; c++ {
		s.prev.Set(top, c, s.p.TSlab)
	}
}

// diffuse applies the explicit 5-point update to every interior cell,
// reading prev and writing next, then pins the boundary: left and right
// columns, the bottom row, and the top row outside the slab span all stay at
// TMantle. The buffers are swapped afterwards.
func (s *Simulator) diffuse() {
	prev, next := s.prev, s.next
	copy(next.Cells, prev.Cells)

	kdt := s.p.Diffusivity * s.dt
	dx2, dy2 := s.p.Dx*s.p.Dx, s.p.Dy*s.p.Dy
	for r := 1; r < prev.Rows-1; r++ {
		up := prev.Row(r - 1)
		mid := prev.Row(r)
		down := prev.Row(r + 1)
		out := next.Row(r)
		for c := 1; c < prev.Cols-1; c++ {
			u := mid[c]
			out[c] = u + kdt*((down[c]-2*u+up[c])/dx2+(mid[c+1]-2*u+mid[c-1])/dy2)
		}
	}

	tm := s.p.TMantle
	for r := 0; r < next.Rows; r++ {
		next.Set(r, 0, tm)
		next.Set(r, next.Cols-1, tm)
	}
	bottom := next.Row(next.Rows - 1)
	topRow := next.Row(0)
	for c := range bottom {
		bottom[c] = tm
		if c < s.p.SlabColMin || c > s.p.SlabColMax {
			topRow[c] = tm
		}
	}

	s.prev, s.next = s.next, s.prev
}

// Run executes the fixed step loop, recording a snapshot at every requested
// step index. A non-finite field aborts the run with ErrDiverged wrapped
// with the offending step.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	want := make(map[int]bool, len(s.p.SnapshotSteps))
	for _, m := range s.p.SnapshotSteps {
		want[m] = true
	}

	res := &Result{Metrics: make(map[string]float64)}
	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < s.p.Steps; i++ {
		select {
		case <-ctx.Done():
			s.summarize(res)
			return res, ctx.Err()
		default:
		}

		s.Step()
		res.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(s.prev, i)
		}
		for _, o := range s.observers {
			o.OnStep(s.prev, i)
		}

		if !s.prev.IsFinite() {
			s.summarize(res)
			return res, fmt.Errorf("step %d: %w", i, thermal.ErrDiverged)
		}

		if want[i] {
			res.Snapshots = append(res.Snapshots, Snapshot{
				Step:  i,
				Label: s.p.TimeLabel(i),
				Field: s.prev.Clone(),
			})
		}
	}

	s.summarize(res)
	return res, nil
}

func (s *Simulator) summarize(res *Result) {
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

// FindSnapshot returns the recorded snapshot for a step index.
func (r *Result) FindSnapshot(step int) (Snapshot, error) {
	for _, sn := range r.Snapshots {
		if sn.Step == step {
			return sn, nil
		}
	}
	return Snapshot{}, fmt.Errorf("%w: %d", thermal.ErrNoSnapshot, step)
}
