// Package tensor implements the fixed-shape float32 arithmetic of the transliteration model
package tensor

import "fmt"

// Matrix is a dense row-major float32 matrix.
type Matrix struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float32 `json:"data"`
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// Row returns row i as a view into the matrix data.
func (m Matrix) Row(i int) []float32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Valid reports whether the data length matches the shape.
func (m Matrix) Valid() bool {
	return m.Rows >= 0 && m.Cols >= 0 && len(m.Data) == m.Rows*m.Cols
}

func mustLen(op string, got, want int) {
	if got != want {
		panic(fmt.Sprintf("tensor: %s: length %d, want %d", op, got, want))
	}
}

// MatVec computes dst = m x.
func MatVec(dst []float32, m Matrix, x []float32) {
	mustLen("matvec dst", len(dst), m.Rows)
	mustLen("matvec x", len(x), m.Cols)
	for i := range dst {
		dst[i] = Dot(m.Row(i), x)
	}
}

// Affine computes dst = m x + bias. A nil bias is treated as zeros.
func Affine(dst []float32, m Matrix, x, bias []float32) {
	MatVec(dst, m, x)
	if bias != nil {
		Add(dst, dst, bias)
	}
}

// Add computes dst = a + b element-wise.
func Add(dst, a, b []float32) {
	mustLen("add a", len(a), len(dst))
	mustLen("add b", len(b), len(dst))
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// Scale multiplies v by s in place.
func Scale(v []float32, s float32) {
	for i := range v {
		v[i] *= s
	}
}

// Concat returns a new vector holding a followed by b.
func Concat(a, b []float32) []float32 {
	out := make([]float32, len(a)+len(b))
	copy(out, a)
	copy(out[len(a):], b)
	return out
}

// ArgMax returns the index of the first maximal element, or -1 for an empty vector.
func ArgMax(x []float32) int {
	if len(x) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(x); i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}
