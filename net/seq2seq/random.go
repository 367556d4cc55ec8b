package seq2seq

import "math"
import "math/rand"

import "github.com/neurlang/kanalizer/layer"
import "github.com/neurlang/kanalizer/tensor"

type initializer struct {
	r *rand.Rand
}

func (i initializer) uniform(v []float32, fan int) {
	k := 1 / math.Sqrt(float64(fan))
	for j := range v {
		v[j] = float32((2*i.r.Float64() - 1) * k)
	}
}

func (i initializer) matrix(rows, cols int) tensor.Matrix {
	m := tensor.NewMatrix(rows, cols)
	i.uniform(m.Data, cols)
	return m
}

func (i initializer) vector(n, fan int) []float32 {
	v := make([]float32, n)
	i.uniform(v, fan)
	return v
}

func (i initializer) embedding(symbols, dim int) layer.Embedding {
	m := tensor.NewMatrix(symbols, dim)
	for j := range m.Data {
		m.Data[j] = float32(i.r.NormFloat64())
	}
	return layer.Embedding{Weight: m}
}

func (i initializer) linear(in, out int) layer.Linear {
	return layer.Linear{Weight: i.matrix(out, in), Bias: i.vector(out, in)}
}

func (i initializer) gru(in, hidden int) layer.GRU {
	return layer.GRU{
		WeightIH: i.matrix(3*hidden, in),
		WeightHH: i.matrix(3*hidden, hidden),
		BiasIH:   i.vector(3*hidden, hidden),
		BiasHH:   i.vector(3*hidden, hidden),
	}
}

func norm(n int) layer.Norm {
	g := make([]float32, n)
	for j := range g {
		g[j] = 1
	}
	return layer.Norm{Gamma: g, Beta: make([]float32, n), Eps: layer.DefaultEps}
}

// Random creates a network of the given configuration with weights drawn
// from a generator seeded by seed. Equal seeds give equal networks. It
// stands in for a trained model in tests and benchmarks.
func Random(cfg Config, seed int64) (*Network, error) {
	i := initializer{r: rand.New(rand.NewSource(seed))}
	d := cfg.Dim
	n := &Network{Config: cfg}
	if d <= 0 || cfg.Heads <= 0 {
		return nil, n.Validate()
	}

	n.Encoder.Embedding = i.embedding(len(cfg.Input), d)
	n.Encoder.Forward = i.gru(d, d)
	n.Encoder.Backward = i.gru(d, d)
	n.Encoder.Norm = norm(2 * d)
	n.Encoder.Proj = i.linear(2*d, d)

	n.Decoder.Embedding = i.embedding(len(cfg.Output), d)
	n.Decoder.Pre = i.gru(d, d)
	n.Decoder.PreNorm = norm(d)
	n.Decoder.Attn = layer.Attention{
		InProj: i.matrix(3*d, d),
		InBias: make([]float32, 3*d),
		Out:    i.linear(d, d),
		Heads:  cfg.Heads,
	}
	n.Decoder.AttnNorm = norm(d)
	n.Decoder.Post = i.gru(2*d, d)
	n.Decoder.PostNorm = norm(d)
	n.Decoder.Out = i.linear(d, len(cfg.Output))

	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}
