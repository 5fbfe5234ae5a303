package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/slabtherm/internal/thermal"
)

// ColorScale maps temperatures onto the fixed "hot" ramp between Min and
// Max. Snapshots are always rendered against [TSlab, TMantle], never
// rescaled per frame, so frames are directly comparable.
type ColorScale struct {
	Min float64
	Max float64
}

// RGB interpolates black → red → yellow → white, the classic hot colormap.
func (cs ColorScale) RGB(v float64) (r, g, b int) {
	t := 0.0
	if cs.Max > cs.Min {
		t = (v - cs.Min) / (cs.Max - cs.Min)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	switch {
	case t < 1.0/3:
		r = int(255 * t * 3)
	case t < 2.0/3:
		r = 255
		g = int(255 * (t - 1.0/3) * 3)
	default:
		r = 255
		g = 255
		b = int(255 * (t - 2.0/3) * 3)
	}
	return r, g, b
}

func (cs ColorScale) Color(v float64) lipgloss.Color {
	r, g, b := cs.RGB(v)
	return lipgloss.Color(hexColor(r, g, b))
}

func hexColor(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Heatmap renders a field as ANSI half-blocks, two grid rows per terminal
// row (upper row as foreground, lower as background). The field is sampled
// down to fit maxCols × 2*maxRows cells.
func Heatmap(f thermal.Field, cs ColorScale, maxCols, maxRows int) string {
	if f.Rows == 0 || f.Cols == 0 {
		return ""
	}

	stepC := (f.Cols + maxCols - 1) / maxCols
	stepR := (f.Rows + 2*maxRows - 1) / (2 * maxRows)
	if stepC < 1 {
		stepC = 1
	}
	if stepR < 1 {
		stepR = 1
	}

	var sb strings.Builder
	for r := 0; r < f.Rows; r += 2 * stepR {
		for c := 0; c < f.Cols; c += stepC {
			upper := f.At(r, c)
			lower := upper
			if r+stepR < f.Rows {
				lower = f.At(r+stepR, c)
			}
			style := lipgloss.NewStyle().
				Foreground(cs.Color(upper)).
				Background(cs.Color(lower))
			sb.WriteString(style.Render("▀"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Colorbar renders the scale legend with its end labels.
func Colorbar(cs ColorScale, width int) string {
	if width < 2 {
		width = 2
	}
	var sb strings.Builder
	for i := 0; i < width; i++ {
		v := cs.Min + (cs.Max-cs.Min)*float64(i)/float64(width-1)
		sb.WriteString(lipgloss.NewStyle().Foreground(cs.Color(v)).Render("█"))
	}
	return fmt.Sprintf("%g °C %s %g °C", cs.Min, sb.String(), cs.Max)
}

// DepthProfile extracts the temperature column at one x index, surface
// first. Plot input for the profile command.
func DepthProfile(f thermal.Field, col int) []float64 {
	if col < 0 || col >= f.Cols {
		return nil
	}
	out := make([]float64, f.Rows)
	for r := 0; r < f.Rows; r++ {
		out[r] = f.At(r, col)
	}
	return out
}
