// Package decoder implements the output side of the transliteration network and the search over it
package decoder

import "github.com/neurlang/kanalizer/layer"
import "github.com/neurlang/kanalizer/tensor"

// State is the recurrent state of one hypothesis. Contexts never modify a
// State they were given, so hypotheses may share them.
type State []float32

// Decoder prepares a decoding context for one inference call.
type Decoder interface {

	// Begin binds the decoder to the encoder states of one input.
	Begin(states [][]float32) Context
}

// Context scores next symbols for the input it was begun with.
type Context interface {

	// Start returns the state before the first symbol.
	Start() State

	// Step consumes the previously emitted symbol and returns raw scores
	// over the output vocabulary together with the next state.
	Step(s State, prev int) (logits []float32, next State)
}

// Attention is a two-layer recurrent decoder attending over every encoder
// position at each step.
type Attention struct {
	Embedding layer.Embedding `json:"embedding"`
	Pre       layer.GRU       `json:"pre"`
	PreNorm   layer.Norm      `json:"pre_norm"`
	Attn      layer.Attention `json:"attn"`
	AttnNorm  layer.Norm      `json:"attn_norm"`
	Post      layer.GRU       `json:"post"` // input [2*dim]
	PostNorm  layer.Norm      `json:"post_norm"`
	Out       layer.Linear    `json:"out"` // [symbols, dim]
}

// Dim reports the model width.
func (d *Attention) Dim() int {
	return d.Pre.Hidden()
}

// Symbols reports the size of the output vocabulary.
func (d *Attention) Symbols() int {
	return d.Out.Weight.Rows
}

// Begin projects the encoder states into attention memory.
func (d *Attention) Begin(states [][]float32) Context {
	return &attentionContext{d: d, mem: d.Attn.Memory(states)}
}

type attentionContext struct {
	d   *Attention
	mem *layer.Memory
}

// Start returns zero states for both recurrent layers.
func (c *attentionContext) Start() State {
	return make(State, 2*c.d.Dim())
}

func (c *attentionContext) Step(s State, prev int) ([]float32, State) {
	d := c.d
	dim := d.Dim()

	h1 := d.Pre.Step(d.Embedding.Lookup(prev), s[:dim])
	dec := make([]float32, dim)
	d.PreNorm.Forward(dec, h1)

	attn := d.Attn.Forward(dec, c.mem)
	d.AttnNorm.Forward(attn, attn)

	h2 := d.Post.Step(tensor.Concat(dec, attn), s[dim:])
	y := make([]float32, dim)
	d.PostNorm.Forward(y, h2)

	logits := make([]float32, d.Symbols())
	d.Out.Forward(logits, y)
	return logits, State(tensor.Concat(h1, h2))
}
