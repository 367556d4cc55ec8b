// Package inference implements the english to katakana transliteration engine
package inference

import "io"
import "log"

import "github.com/pkg/errors"

import "github.com/neurlang/kanalizer/decoder"
import "github.com/neurlang/kanalizer/net/seq2seq"
import "github.com/neurlang/kanalizer/vocab"

// ErrEmptyInput is returned by Infer for an empty word.
var ErrEmptyInput = vocab.ErrEmptyInput

// InvalidCharsError is returned by Infer for a word with characters outside
// the input alphabet. It lists all of them.
type InvalidCharsError = vocab.InvalidCharsError

// C2k transliterates words letter by letter into katakana. It is read-only
// after New; Infer may be called from many goroutines at once.
type C2k struct {
	net    *seq2seq.Network
	input  *vocab.Table
	output *vocab.Table
	search decoder.Search
}

// Result is a transliteration together with its model score.
type Result struct {
	Text    string  // printable katakana
	Symbols []int   // output indices, reserved symbols included
	Score   float64 // log-probability of Symbols
	Ended   bool    // false if the length limit cut the output
}

// New creates an engine over a loaded network.
func New(net *seq2seq.Network, opts ...Option) (*C2k, error) {
	if net == nil {
		return nil, errors.New("inference: nil network")
	}
	h := HyperParameters{
		BeamWidth: DefaultBeamWidth,
		MaxLength: DefaultMaxLength,
		Logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if err := opt(&h); err != nil {
			return nil, errors.Wrap(err, "inference")
		}
	}
	if err := net.Validate(); err != nil {
		return nil, errors.Wrap(err, "inference")
	}
	in, out, err := net.Tables()
	if err != nil {
		return nil, errors.Wrap(err, "inference")
	}
	c := &C2k{
		net:    net,
		input:  in,
		output: out,
		search: decoder.Search{
			Width:     h.BeamWidth,
			MaxLength: h.MaxLength,
			SOS:       vocab.SOS,
			EOS:       vocab.EOS,
			Banned:    []int{vocab.Pad, vocab.SOS},
		},
	}
	h.Logger.Printf("c2k: dim=%d heads=%d input=%d output=%d beam=%d maxlen=%d",
		net.Dim, net.Heads, in.Len(), out.Len(), h.BeamWidth, h.MaxLength)
	return c, nil
}

// MustNew creates an engine or panics
func MustNew(net *seq2seq.Network, opts ...Option) *C2k {
	c, err := New(net, opts...)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Infer transliterates word. It fails with ErrEmptyInput for an empty word
// and with *InvalidCharsError when word contains characters outside the
// input alphabet; no model computation runs in either case.
func (c *C2k) Infer(word string) (string, error) {
	r, err := c.InferResult(word)
	if err != nil {
		return "", err
	}
	return r.Text, nil
}

// InferResult is Infer returning the winning hypothesis as well.
func (c *C2k) InferResult(word string) (Result, error) {
	if word == "" {
		return Result{}, ErrEmptyInput
	}
	ids, err := c.input.EncodeWord(word)
	if err != nil {
		return Result{}, err
	}
	states := c.net.Encoder.Encode(ids)
	h := c.search.Run(c.net.Decoder.Begin(states))
	return Result{
		Text:    c.output.DecodeSequence(h.Symbols),
		Symbols: h.Symbols,
		Score:   h.Score,
		Ended:   h.Ended(vocab.EOS),
	}, nil
}

// Greedy transliterates word following the single most likely symbol at
// each step, ignoring the beam width.
func (c *C2k) Greedy(word string) (Result, error) {
	if word == "" {
		return Result{}, ErrEmptyInput
	}
	ids, err := c.input.EncodeWord(word)
	if err != nil {
		return Result{}, err
	}
	h := c.search.Greedy(c.net.Decoder.Begin(c.net.Encoder.Encode(ids)))
	return Result{
		Text:    c.output.DecodeSequence(h.Symbols),
		Symbols: h.Symbols,
		Score:   h.Score,
		Ended:   h.Ended(vocab.EOS),
	}, nil
}
