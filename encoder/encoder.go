// Package encoder implements the input side of the transliteration network
package encoder

import "github.com/neurlang/kanalizer/layer"
import "github.com/neurlang/kanalizer/tensor"

// Encoder turns a framed index sequence into one state vector per position.
type Encoder interface {

	// Encode returns len(ids) vectors of width Dim().
	Encode(ids []int) [][]float32

	// Dim reports the width of the returned vectors.
	Dim() int
}

// BiGRU reads the sequence in both directions and mixes the two readings
// back down to the model width.
type BiGRU struct {
	Embedding layer.Embedding `json:"embedding"`
	Forward   layer.GRU       `json:"forward"`
	Backward  layer.GRU       `json:"backward"`
	Norm      layer.Norm      `json:"norm"` // [2*dim]
	Proj      layer.Linear    `json:"proj"` // [dim, 2*dim], followed by tanh
}

// Dim reports the model width.
func (e *BiGRU) Dim() int {
	return e.Proj.Weight.Rows
}

// Encode embeds ids, runs both recurrent directions, normalizes their
// concatenation and projects it with a tanh.
func (e *BiGRU) Encode(ids []int) [][]float32 {
	xs := make([][]float32, len(ids))
	for i, id := range ids {
		xs[i] = e.Embedding.Lookup(id)
	}
	fwd := e.Forward.Run(xs, false)
	bwd := e.Backward.Run(xs, true)
	out := make([][]float32, len(ids))
	for i := range ids {
		both := tensor.Concat(fwd[i], bwd[i])
		e.Norm.Forward(both, both)
		out[i] = make([]float32, e.Dim())
		e.Proj.Forward(out[i], both)
		tensor.TanhInPlace(out[i])
	}
	return out
}
