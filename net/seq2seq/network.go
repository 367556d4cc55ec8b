// Package seq2seq implements the parameter bundle of the transliteration network
package seq2seq

import "math"
import "runtime"

import "github.com/pkg/errors"

import "github.com/neurlang/kanalizer/decoder"
import "github.com/neurlang/kanalizer/encoder"
import "github.com/neurlang/kanalizer/layer"
import "github.com/neurlang/kanalizer/parallel"
import "github.com/neurlang/kanalizer/vocab"

// Config describes the dimensions and alphabets of a network.
type Config struct {
	Dim    int      `json:"dim"`    // model width
	Heads  int      `json:"heads"`  // attention heads, must divide Dim
	Input  []string `json:"input"`  // input symbol table, see vocab.New
	Output []string `json:"output"` // output symbol table, see vocab.New
}

// DefaultConfig returns the configuration of the shipped model: width 32,
// 4 heads, lowercase ascii in, katakana out.
func DefaultConfig() Config {
	return Config{
		Dim:    32,
		Heads:  4,
		Input:  vocab.DefaultInput(),
		Output: vocab.DefaultOutput(),
	}
}

// Network is the complete set of trained weights. It is never modified
// after loading and may be shared by any number of goroutines.
type Network struct {
	Config  `json:"config"`
	Encoder encoder.BiGRU     `json:"encoder"`
	Decoder decoder.Attention `json:"decoder"`
}

type shaped struct {
	name    string
	layer   layer.Layer
	in, out int
}

func (n *Network) layers() []shaped {
	d := n.Dim
	return []shaped{
		{"encoder embedding", &n.Encoder.Embedding, len(n.Input), d},
		{"encoder forward", &n.Encoder.Forward, d, d},
		{"encoder backward", &n.Encoder.Backward, d, d},
		{"encoder norm", &n.Encoder.Norm, 2 * d, 2 * d},
		{"encoder proj", &n.Encoder.Proj, 2 * d, d},
		{"decoder embedding", &n.Decoder.Embedding, len(n.Output), d},
		{"decoder pre", &n.Decoder.Pre, d, d},
		{"decoder pre_norm", &n.Decoder.PreNorm, d, d},
		{"decoder attn", &n.Decoder.Attn, d, d},
		{"decoder attn_norm", &n.Decoder.AttnNorm, d, d},
		{"decoder post", &n.Decoder.Post, 2 * d, d},
		{"decoder post_norm", &n.Decoder.PostNorm, d, d},
		{"decoder out", &n.Decoder.Out, d, len(n.Output)},
	}
}

// Validate checks that every weight block has the shape implied by the
// configuration and that no weight is NaN or infinite.
func (n *Network) Validate() error {
	if n.Dim <= 0 || n.Heads <= 0 || n.Dim%n.Heads != 0 {
		return errors.Errorf("seq2seq: width %d with %d heads", n.Dim, n.Heads)
	}
	if _, err := vocab.New(n.Input); err != nil {
		return errors.Wrap(err, "seq2seq: input table")
	}
	if _, err := vocab.New(n.Output); err != nil {
		return errors.Wrap(err, "seq2seq: output table")
	}
	if n.Decoder.Attn.Heads != n.Heads {
		return errors.Errorf("seq2seq: attention has %d heads, config %d", n.Decoder.Attn.Heads, n.Heads)
	}
	var params [][]float32
	var names []string
	for _, l := range n.layers() {
		if err := l.layer.Check(); err != nil {
			return errors.Wrap(err, "seq2seq: "+l.name)
		}
		if in, out := l.layer.Shape(); in != l.in || out != l.out {
			return errors.Errorf("seq2seq: %s is %dx%d, want %dx%d", l.name, in, out, l.in, l.out)
		}
		for _, p := range l.layer.Params() {
			params = append(params, p)
			names = append(names, l.name)
		}
	}
	return parallel.FirstError(len(params), runtime.NumCPU(), func(i int) error {
		for j, v := range params[i] {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return errors.Errorf("seq2seq: %s: weight %d is %v", names[i], j, v)
			}
		}
		return nil
	})
}

// Tables builds the input and output symbol tables.
func (n *Network) Tables() (in, out *vocab.Table, err error) {
	if in, err = vocab.New(n.Input); err != nil {
		return nil, nil, errors.Wrap(err, "seq2seq: input table")
	}
	if out, err = vocab.New(n.Output); err != nil {
		return nil, nil, errors.Wrap(err, "seq2seq: output table")
	}
	return in, out, nil
}
