package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/slabtherm/internal/metrics"
	"github.com/san-kum/slabtherm/internal/render"
	"github.com/san-kum/slabtherm/internal/slab"
	"github.com/san-kum/slabtherm/internal/store"
	"github.com/san-kum/slabtherm/internal/thermal"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a simulator step-by-step from the bubbletea event loop and
// renders the field as a heat map each tick.
type Model struct {
	sim     *slab.Simulator
	p       thermal.Parameters
	scale   render.ColorScale
	st      *store.Store
	fps     int
	running bool
	done    bool
	saved   string
	err     error
}

func NewModel(p thermal.Parameters, fps int, st *store.Store) (Model, error) {
	sim, err := slab.New(p)
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = 30
	}
	return Model{
		sim:     sim,
		p:       p,
		scale:   render.ColorScale{Min: p.TSlab, Max: p.TMantle},
		st:      st,
		fps:     fps,
		running: true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			sim, err := slab.New(m.p)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.sim = sim
			m.done = false
			m.saved = ""
			m.running = true
		case "s":
			if m.st == nil {
				break
			}
			step := m.sim.StepIndex()
			frame := &slab.Result{
				Snapshots: []slab.Snapshot{
					{Step: step, Label: m.p.TimeLabel(step), Field: m.sim.Snapshot()},
				},
				StepsTaken: step,
			}
			id, err := m.st.Save(m.p, m.sim.Dt(), frame)
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.saved = id
		}
	case TickMsg:
		if m.running && !m.done {
			m.sim.Step()
			if !m.sim.Snapshot().IsFinite() {
				m.err = thermal.ErrDiverged
				m.done = true
			}
			if m.sim.StepIndex() >= m.p.Steps {
				m.done = true
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	field := m.sim.Snapshot()
	front := 0.0
	if r := metrics.DeepestColdRow(field, m.p); r > 0 {
		front = float64(r) * m.p.Dy
	}
	min, max := field.MinMax()

	status := fmt.Sprintf("step %d/%d  %s  slab front %.0f km  field [%.0f, %.0f] °C",
		m.sim.StepIndex(), m.p.Steps,
		m.p.TimeLabel(m.sim.StepIndex()),
		front, min, max)
	if m.saved != "" {
		status += "  saved " + m.saved
	}

	state := statusStyle.Render(status)
	switch {
	case m.err != nil:
		state = pausedStyle.Render(status + "  DIVERGED")
	case m.done:
		state = statusStyle.Render(status + "  done")
	case !m.running:
		state = pausedStyle.Render(status + "  paused")
	}

	return headerStyle.Render("slabtherm: subducting slab heat diffusion") + "\n" +
		render.Heatmap(field, m.scale, 100, 25) +
		render.Colorbar(m.scale, 40) + "\n" +
		state +
		helpStyle.Render("\nspace pause · r reset · s save · q quit")
}

// Run starts the live terminal view and blocks until it exits. Frames saved
// with the s key land in st as single-snapshot runs.
func Run(p thermal.Parameters, fps int, st *store.Store) error {
	m, err := NewModel(p, fps, st)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.err
	}
	return nil
}
