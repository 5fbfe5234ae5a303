package export

import (
	"strings"
	"testing"

	"github.com/san-kum/slabtherm/internal/render"
	"github.com/san-kum/slabtherm/internal/slab"
	"github.com/san-kum/slabtherm/internal/thermal"
)

func testSnapshot(label string) slab.Snapshot {
	f := thermal.NewField(6, 6, 1300)
	f.Set(1, 2, 0)
	return slab.Snapshot{Step: 0, Label: label, Field: f}
}

func TestFieldSVG(t *testing.T) {
	cs := render.ColorScale{Min: 0, Max: 1300}
	svg := FieldSVG(testSnapshot("0 ka"), cs)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a well-formed svg document")
	}
	if !strings.Contains(svg, ">0 ka</text>") {
		t.Error("missing snapshot label")
	}
	// 36 cells plus background
	if n := strings.Count(svg, "<rect"); n < 37 {
		t.Errorf("expected at least 37 rects, got %d", n)
	}
	// hot mantle cells render white, the cold cell black
	if !strings.Contains(svg, `fill="#ffffff"`) || !strings.Contains(svg, `fill="#000000"`) {
		t.Error("expected both ramp extremes in output")
	}
}

func TestFigureSVG(t *testing.T) {
	cs := render.ColorScale{Min: 0, Max: 1300}
	snaps := []slab.Snapshot{
		testSnapshot("0 ka"), testSnapshot("100 ka"),
		testSnapshot("500 ka"), testSnapshot("990 ka"),
	}

	svg := FigureSVG(snaps, cs)
	for _, label := range []string{"0 ka", "100 ka", "500 ka", "990 ka"} {
		if !strings.Contains(svg, ">"+label+"</text>") {
			t.Errorf("missing panel label %q", label)
		}
	}
	if !strings.Contains(svg, "T (°C)") {
		t.Error("missing colorbar title")
	}

	if FigureSVG(nil, cs) != "" {
		t.Error("expected empty output for no snapshots")
	}
}
