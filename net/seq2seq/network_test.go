package seq2seq

import "bytes"
import "math"
import "path/filepath"
import "reflect"
import "testing"

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Dim = 8
	cfg.Heads = 2
	return cfg
}

func TestRandomValidates(t *testing.T) {
	n, err := Random(smallConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := n.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
	m, _ := Random(smallConfig(), 1)
	if !reflect.DeepEqual(n, m) {
		t.Error("equal seeds gave different networks")
	}
	o, _ := Random(smallConfig(), 2)
	if reflect.DeepEqual(n, o) {
		t.Error("different seeds gave equal networks")
	}
	in, out, err := n.Tables()
	if err != nil || in.Len() != 29 || out.Len() != 88 {
		t.Errorf("Tables = %v, %v, %v", in, out, err)
	}
}

func TestRandomRejectsBadConfig(t *testing.T) {
	for _, mod := range []func(*Config){
		func(c *Config) { c.Dim = 0 },
		func(c *Config) { c.Heads = 0 },
		func(c *Config) { c.Heads = 3 },
		func(c *Config) { c.Input = []string{"a", "b"} },
		func(c *Config) { c.Output = nil },
	} {
		cfg := smallConfig()
		mod(&cfg)
		if _, err := Random(cfg, 1); err == nil {
			t.Errorf("Random accepted %+v", cfg)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	for name, mod := range map[string]func(*Network){
		"short bias":     func(n *Network) { n.Encoder.Proj.Bias = n.Encoder.Proj.Bias[1:] },
		"nan":            func(n *Network) { n.Decoder.Out.Weight.Data[5] = float32(math.NaN()) },
		"inf":            func(n *Network) { n.Decoder.Pre.BiasHH[0] = float32(math.Inf(1)) },
		"heads":          func(n *Network) { n.Decoder.Attn.Heads = 4 },
		"vocab mismatch": func(n *Network) { n.Output = n.Output[:len(n.Output)-1] },
		"gru width":      func(n *Network) { n.Encoder.Forward = n.Decoder.Post },
	} {
		n, err := Random(smallConfig(), 3)
		if err != nil {
			t.Fatal(err)
		}
		mod(n)
		if err := n.Validate(); err == nil {
			t.Errorf("%s: Validate accepted", name)
		}
	}
}

func TestCompressedWeightsRoundTrip(t *testing.T) {
	n, err := Random(smallConfig(), 4)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := n.WriteCompressedWeights(&buf); err != nil {
		t.Fatal(err)
	}
	m, err := ReadCompressedWeights(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(n, m) {
		t.Error("weights changed in round trip")
	}

	name := filepath.Join(t.TempDir(), "c2k.json.lzw")
	if err := n.WriteCompressedWeightsToFile(name); err != nil {
		t.Fatal(err)
	}
	f, err := ReadCompressedWeightsFromFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(n, f) {
		t.Error("weights changed in file round trip")
	}
}

func TestReadCompressedWeightsErrors(t *testing.T) {
	if _, err := ReadCompressedWeights(bytes.NewReader([]byte("not lzw json"))); err == nil {
		t.Error("garbage accepted")
	}
	if _, err := ReadCompressedWeightsFromFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing file accepted")
	}

	n, _ := Random(smallConfig(), 5)
	n.Encoder.Norm.Beta = nil
	var buf bytes.Buffer
	if err := n.WriteCompressedWeights(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCompressedWeights(&buf); err == nil {
		t.Error("invalid network accepted")
	}
}
