package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/slabtherm/internal/render"
	"github.com/san-kum/slabtherm/internal/slab"
)

const (
	cellPx    = 4
	marginPx  = 36
	gutterPx  = 24
	cbarWidth = 18
)

// FieldSVG renders one snapshot as a standalone figure with axis labels.
func FieldSVG(sn slab.Snapshot, cs render.ColorScale) string {
	var sb strings.Builder
	w := sn.Field.Cols*cellPx + 2*marginPx
	h := sn.Field.Rows*cellPx + 2*marginPx

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, w, h, w, h))
	writePanel(&sb, sn, cs, marginPx, marginPx)
	sb.WriteString("</svg>")
	return sb.String()
}

// FigureSVG lays the snapshots out two per row with a shared colorbar on the
// right, the reference figure's composition.
func FigureSVG(snaps []slab.Snapshot, cs render.ColorScale) string {
	if len(snaps) == 0 {
		return ""
	}

	cols := 2
	rows := (len(snaps) + cols - 1) / cols
	panelW := snaps[0].Field.Cols * cellPx
	panelH := snaps[0].Field.Rows * cellPx
	w := cols*(panelW+gutterPx) + 2*marginPx + cbarWidth + 3*gutterPx
	h := rows*(panelH+gutterPx+marginPx) + marginPx

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, w, h, w, h))

	for i, sn := range snaps {
		x := marginPx + (i%cols)*(panelW+gutterPx)
		y := marginPx + (i/cols)*(panelH+gutterPx+marginPx)
		writePanel(&sb, sn, cs, x, y)
	}

	writeColorbar(&sb, cs, w-marginPx-cbarWidth, marginPx, h-2*marginPx)
	sb.WriteString("</svg>")
	return sb.String()
}

func writePanel(sb *strings.Builder, sn slab.Snapshot, cs render.ColorScale, x0, y0 int) {
	f := sn.Field
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="sans-serif" font-size="13" fill="#222222">%s</text>
`, x0, y0-8, sn.Label))

	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			cr, cg, cb := cs.RGB(f.At(r, c))
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="#%02x%02x%02x"/>
`, x0+c*cellPx, y0+r*cellPx, cellPx, cellPx, cr, cg, cb))
		}
	}

	bottom := y0 + f.Rows*cellPx
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#444444">Distance (km)</text>
<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#444444" transform="rotate(-90 %d %d)">Depth (km)</text>
`, x0+f.Cols*cellPx/2-34, bottom+16, x0-8, y0+f.Rows*cellPx/2, x0-8, y0+f.Rows*cellPx/2))
}

func writeColorbar(sb *strings.Builder, cs render.ColorScale, x0, y0, height int) {
	steps := 64
	bandH := float64(height) / float64(steps)
	for i := 0; i < steps; i++ {
		// hottest at the top, matching the reference colorbar
		v := cs.Max - (cs.Max-cs.Min)*float64(i)/float64(steps-1)
		cr, cg, cb := cs.RGB(v)
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%.1f" width="%d" height="%.1f" fill="#%02x%02x%02x"/>
`, x0, float64(y0)+float64(i)*bandH, cbarWidth, bandH+0.5, cr, cg, cb))
	}
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#222222">%g</text>
<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#222222">%g</text>
<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#444444">T (°C)</text>
`, x0+cbarWidth+4, y0+10, cs.Max, x0+cbarWidth+4, y0+height, cs.Min, x0-4, y0-10))
}
