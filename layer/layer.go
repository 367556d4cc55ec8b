// Package layer defines the parameterised building blocks of the seq2seq network
package layer

import "fmt"
import "github.com/neurlang/kanalizer/tensor"

// Layer is a block of weights with a fixed input and output width.
type Layer interface {

	// Shape reports the input and output width of the layer.
	Shape() (in, out int)

	// Params lists every weight slice of the layer, for validation.
	Params() [][]float32

	// Check reports a weight layout inconsistent with the layer's own shape.
	Check() error
}

func checkMatrix(name string, m tensor.Matrix, rows, cols int) error {
	if !m.Valid() || m.Rows != rows || m.Cols != cols {
		return fmt.Errorf("%s: shape %dx%d (%d values), want %dx%d", name, m.Rows, m.Cols, len(m.Data), rows, cols)
	}
	return nil
}

func checkVector(name string, v []float32, n int) error {
	if len(v) != n {
		return fmt.Errorf("%s: length %d, want %d", name, len(v), n)
	}
	return nil
}

// Embedding maps symbol indices to dense vectors.
type Embedding struct {
	Weight tensor.Matrix `json:"weight"` // [symbols, dim]
}

// Lookup returns the vector of symbol id. The result is a view, do not modify it.
func (e *Embedding) Lookup(id int) []float32 {
	return e.Weight.Row(id)
}

// Shape reports the number of symbols and the vector width.
func (e *Embedding) Shape() (in, out int) {
	return e.Weight.Rows, e.Weight.Cols
}

// Params lists the embedding table.
func (e *Embedding) Params() [][]float32 {
	return [][]float32{e.Weight.Data}
}

// Check reports a malformed embedding table.
func (e *Embedding) Check() error {
	return checkMatrix("embedding", e.Weight, e.Weight.Rows, e.Weight.Cols)
}

// Linear is an affine transform y = W x + b.
type Linear struct {
	Weight tensor.Matrix `json:"weight"` // [out, in]
	Bias   []float32     `json:"bias"`   // [out]
}

// Forward writes W x + b into dst.
func (l *Linear) Forward(dst, x []float32) {
	tensor.Affine(dst, l.Weight, x, l.Bias)
}

// Shape reports the input and output width.
func (l *Linear) Shape() (in, out int) {
	return l.Weight.Cols, l.Weight.Rows
}

// Params lists weight and bias.
func (l *Linear) Params() [][]float32 {
	return [][]float32{l.Weight.Data, l.Bias}
}

// Check reports a bias not matching the weight.
func (l *Linear) Check() error {
	if err := checkMatrix("linear weight", l.Weight, l.Weight.Rows, l.Weight.Cols); err != nil {
		return err
	}
	return checkVector("linear bias", l.Bias, l.Weight.Rows)
}

// DefaultEps is the variance epsilon used by Norm when Eps is zero.
const DefaultEps = 1e-5

// Norm is a layer normalization with learned scale and shift.
type Norm struct {
	Gamma []float32 `json:"gamma"`
	Beta  []float32 `json:"beta"`
	Eps   float32   `json:"eps,omitempty"`
}

// Forward writes the normalized x into dst.
func (n *Norm) Forward(dst, x []float32) {
	eps := n.Eps
	if eps == 0 {
		eps = DefaultEps
	}
	tensor.LayerNorm(dst, x, n.Gamma, n.Beta, eps)
}

// Shape reports the normalized width twice.
func (n *Norm) Shape() (in, out int) {
	return len(n.Gamma), len(n.Gamma)
}

// Params lists scale and shift.
func (n *Norm) Params() [][]float32 {
	return [][]float32{n.Gamma, n.Beta}
}

// Check reports scale and shift of different widths.
func (n *Norm) Check() error {
	if n.Eps < 0 {
		return fmt.Errorf("norm: negative eps %v", n.Eps)
	}
	return checkVector("norm beta", n.Beta, len(n.Gamma))
}
