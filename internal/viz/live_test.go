package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/slabtherm/internal/store"
	"github.com/san-kum/slabtherm/internal/thermal"
)

func smallParams() thermal.Parameters {
	p := thermal.Default()
	p.Width, p.Height = 10, 10
	p.SlabColMin, p.SlabColMax = 3, 6
	p.Steps = 5
	p.SnapshotSteps = nil
	return p
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSaveKeyPersistsFrame(t *testing.T) {
	st := store.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	m, err := NewModel(smallParams(), 10, st)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	var model tea.Model = m
	for i := 0; i < 3; i++ {
		model, _ = model.Update(TickMsg(time.Time{}))
	}
	model, _ = model.Update(keyMsg('s'))

	fm := model.(Model)
	if fm.err != nil {
		t.Fatalf("save key set error: %v", fm.err)
	}
	if fm.saved == "" {
		t.Fatal("expected a saved run id")
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}

	field, err := st.LoadGrid(fm.saved, 3)
	if err != nil {
		t.Fatalf("load saved grid: %v", err)
	}
	if field.Rows != 10 || field.Cols != 10 {
		t.Errorf("saved grid shape %dx%d", field.Rows, field.Cols)
	}

	meta, err := st.Load(fm.saved)
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if len(meta.Snapshots) != 1 || meta.Snapshots[0].Label != "30 ka" {
		t.Errorf("snapshot meta %+v", meta.Snapshots)
	}
}

func TestSaveKeyWithoutStore(t *testing.T) {
	m, err := NewModel(smallParams(), 10, nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	model, _ := m.Update(keyMsg('s'))
	fm := model.(Model)
	if fm.err != nil || fm.saved != "" {
		t.Errorf("store-less save should be a no-op, got err=%v saved=%q", fm.err, fm.saved)
	}
}

func TestViewStatusLines(t *testing.T) {
	m, err := NewModel(smallParams(), 10, nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	view := m.View()
	if !strings.Contains(view, "slabtherm: subducting slab heat diffusion") {
		t.Error("missing header")
	}
	if !strings.Contains(view, "s save") {
		t.Error("help line missing save key")
	}
}
