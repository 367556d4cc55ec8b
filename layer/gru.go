package layer

import "fmt"
import "github.com/neurlang/kanalizer/tensor"

// GRU is a gated recurrent unit cell. Gate rows are stacked in the order
// reset, update, new, each block being Hidden() rows tall.
type GRU struct {
	WeightIH tensor.Matrix `json:"weight_ih"` // [3*hidden, in]
	WeightHH tensor.Matrix `json:"weight_hh"` // [3*hidden, hidden]
	BiasIH   []float32     `json:"bias_ih"`   // [3*hidden]
	BiasHH   []float32     `json:"bias_hh"`   // [3*hidden]
}

// Hidden reports the width of the hidden state.
func (g *GRU) Hidden() int {
	return g.WeightHH.Cols
}

// Step consumes input x with previous hidden state h and returns the next
// hidden state as a new vector:
//
//	r = σ(Wir x + bir + Whr h + bhr)
//	z = σ(Wiz x + biz + Whz h + bhz)
//	n = tanh(Win x + bin + r ⊙ (Whn h + bhn))
//	h' = (1 - z) ⊙ n + z ⊙ h
func (g *GRU) Step(x, h []float32) []float32 {
	hid := g.Hidden()
	gi := make([]float32, 3*hid)
	gh := make([]float32, 3*hid)
	tensor.Affine(gi, g.WeightIH, x, g.BiasIH)
	tensor.Affine(gh, g.WeightHH, h, g.BiasHH)
	out := make([]float32, hid)
	for i := 0; i < hid; i++ {
		r := tensor.Sigmoid(gi[i] + gh[i])
		z := tensor.Sigmoid(gi[hid+i] + gh[hid+i])
		n := tensor.Tanh(gi[2*hid+i] + r*gh[2*hid+i])
		out[i] = (1-z)*n + z*h[i]
	}
	return out
}

// Run steps the cell over the sequence xs starting from a zero state and
// returns every hidden state. With reverse set, the sequence is consumed
// right to left but the result is still indexed by input position.
func (g *GRU) Run(xs [][]float32, reverse bool) [][]float32 {
	out := make([][]float32, len(xs))
	h := make([]float32, g.Hidden())
	for k := range xs {
		i := k
		if reverse {
			i = len(xs) - 1 - k
		}
		h = g.Step(xs[i], h)
		out[i] = h
	}
	return out
}

// Shape reports the input width and the hidden width.
func (g *GRU) Shape() (in, out int) {
	return g.WeightIH.Cols, g.WeightHH.Cols
}

// Params lists all gate weights and biases.
func (g *GRU) Params() [][]float32 {
	return [][]float32{g.WeightIH.Data, g.WeightHH.Data, g.BiasIH, g.BiasHH}
}

// Check reports gate blocks inconsistent with the hidden width.
func (g *GRU) Check() error {
	hid := g.Hidden()
	if hid <= 0 {
		return fmt.Errorf("gru: hidden width %d", hid)
	}
	if err := checkMatrix("gru weight_ih", g.WeightIH, 3*hid, g.WeightIH.Cols); err != nil {
		return err
	}
	if err := checkMatrix("gru weight_hh", g.WeightHH, 3*hid, hid); err != nil {
		return err
	}
	if err := checkVector("gru bias_ih", g.BiasIH, 3*hid); err != nil {
		return err
	}
	return checkVector("gru bias_hh", g.BiasHH, 3*hid)
}
