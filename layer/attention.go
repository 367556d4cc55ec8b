package layer

import "fmt"
import "math"
import "github.com/neurlang/kanalizer/tensor"

// Attention is multi-head scaled dot-product attention with packed query,
// key and value projections.
type Attention struct {
	InProj tensor.Matrix `json:"in_proj"` // [3*dim, dim], rows: query, key, value
	InBias []float32     `json:"in_bias"` // [3*dim]
	Out    Linear        `json:"out"`     // [dim, dim]
	Heads  int           `json:"heads"`
}

// Memory holds the projected keys and values of one attended sequence.
type Memory struct {
	keys   [][]float32
	values [][]float32
}

// Len reports the number of attended positions.
func (m *Memory) Len() int {
	return len(m.keys)
}

// Dim reports the model width.
func (a *Attention) Dim() int {
	return a.InProj.Cols
}

func (a *Attention) project(block int, x []float32) []float32 {
	dim := a.Dim()
	w := tensor.Matrix{Rows: dim, Cols: dim, Data: a.InProj.Data[block*dim*dim : (block+1)*dim*dim]}
	out := make([]float32, dim)
	tensor.Affine(out, w, x, a.InBias[block*dim:(block+1)*dim])
	return out
}

// Memory projects states into keys and values once, so every decoding step
// of a call can attend over them.
func (a *Attention) Memory(states [][]float32) *Memory {
	m := &Memory{
		keys:   make([][]float32, len(states)),
		values: make([][]float32, len(states)),
	}
	for i, s := range states {
		m.keys[i] = a.project(1, s)
		m.values[i] = a.project(2, s)
	}
	return m
}

// Forward attends query q over the memory and returns the projected result.
func (a *Attention) Forward(q []float32, m *Memory) []float32 {
	dim := a.Dim()
	hd := dim / a.Heads
	scale := float32(1 / math.Sqrt(float64(hd)))
	query := a.project(0, q)
	ctx := make([]float32, dim)
	scores := make([]float32, m.Len())
	weights := make([]float32, m.Len())
	for h := 0; h < a.Heads; h++ {
		lo, hi := h*hd, (h+1)*hd
		for t := range scores {
			scores[t] = tensor.Dot(query[lo:hi], m.keys[t][lo:hi])
		}
		tensor.Scale(scores, scale)
		tensor.Softmax(weights, scores)
		for t, w := range weights {
			v := m.values[t][lo:hi]
			for i := range v {
				ctx[lo+i] += w * v[i]
			}
		}
	}
	out := make([]float32, a.Out.Weight.Rows)
	a.Out.Forward(out, ctx)
	return out
}

// Shape reports the model width twice.
func (a *Attention) Shape() (in, out int) {
	return a.Dim(), a.Out.Weight.Rows
}

// Params lists projections and biases.
func (a *Attention) Params() [][]float32 {
	return append([][]float32{a.InProj.Data, a.InBias}, a.Out.Params()...)
}

// Check reports a head count not dividing the width or mismatched projections.
func (a *Attention) Check() error {
	dim := a.Dim()
	if a.Heads <= 0 || dim%a.Heads != 0 {
		return fmt.Errorf("attention: width %d not divisible by %d heads", dim, a.Heads)
	}
	if err := checkMatrix("attention in_proj", a.InProj, 3*dim, dim); err != nil {
		return err
	}
	if err := checkVector("attention in_bias", a.InBias, 3*dim); err != nil {
		return err
	}
	if err := checkMatrix("attention out", a.Out.Weight, dim, dim); err != nil {
		return err
	}
	return a.Out.Check()
}
