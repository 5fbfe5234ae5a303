package thermal

import "math"

// Field is a 2-D temperature grid stored row-major. Row 0 is the surface,
// column 0 the left edge. Values are in °C.
type Field struct {
	Rows  int
	Cols  int
	Cells []float64
}

func NewField(rows, cols int, fill float64) Field {
	cells := make([]float64, rows*cols)
	for i := range cells {
		cells[i] = fill
	}
	return Field{Rows: rows, Cols: cols, Cells: cells}
}

func (f Field) At(r, c int) float64 {
	return f.Cells[r*f.Cols+c]
}

func (f Field) Set(r, c int, v float64) {
	f.Cells[r*f.Cols+c] = v
}

// Row returns the backing slice for one row. Mutations write through.
func (f Field) Row(r int) []float64 {
	return f.Cells[r*f.Cols : (r+1)*f.Cols]
}

func (f Field) Clone() Field {
	c := make([]float64, len(f.Cells))
	copy(c, f.Cells)
	return Field{Rows: f.Rows, Cols: f.Cols, Cells: c}
}

func (f Field) IsFinite() bool {
	for _, v := range f.Cells {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (f Field) MinMax() (min, max float64) {
	if len(f.Cells) == 0 {
		return 0, 0
	}
	min, max = f.Cells[0], f.Cells[0]
	for _, v := range f.Cells[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func (f Field) Equal(other Field) bool {
	if f.Rows != other.Rows || f.Cols != other.Cols {
		return false
	}
	for i, v := range f.Cells {
		if v != other.Cells[i] {
			return false
		}
	}
	return true
}
