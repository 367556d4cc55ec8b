package decoder

import "math"
import "math/rand"
import "reflect"
import "testing"

// table scores the next symbol from the previous one only.
type table [][]float32

func (t table) Start() State {
	return State{}
}

func (t table) Step(s State, prev int) ([]float32, State) {
	return append([]float32(nil), t[prev]...), s
}

func logits(probs ...float64) []float32 {
	out := make([]float32, len(probs))
	for i, p := range probs {
		out[i] = float32(math.Log(p))
	}
	return out
}

const (
	pad = 0
	sos = 1
	eos = 2
	a   = 3
	b   = 4
)

func newSearch(width, maxLength int) *Search {
	return &Search{Width: width, MaxLength: maxLength, SOS: sos, EOS: eos, Banned: []int{pad, sos}}
}

func TestBeamBeatsGreedy(t *testing.T) {
	ctx := table{
		pad: logits(1e-9, 1e-9, 0.2, 0.4, 0.4),
		sos: logits(1e-9, 1e-9, 1e-9, 0.6, 0.4),
		eos: logits(1e-9, 1e-9, 0.2, 0.4, 0.4),
		a:   logits(1e-9, 1e-9, 0.35, 0.33, 0.32),
		b:   logits(1e-9, 1e-9, 0.99, 0.005, 0.005),
	}
	greedy := newSearch(1, 8).Greedy(ctx)
	if !reflect.DeepEqual(greedy.Symbols, []int{a, eos}) {
		t.Errorf("greedy = %v", greedy.Symbols)
	}
	beam := newSearch(2, 8).Run(ctx)
	if !reflect.DeepEqual(beam.Symbols, []int{b, eos}) {
		t.Errorf("beam = %v", beam.Symbols)
	}
	if !(beam.Score > greedy.Score) {
		t.Errorf("beam score %v not above greedy %v", beam.Score, greedy.Score)
	}
	if !beam.Ended(eos) {
		t.Error("beam result did not end with eos")
	}
}

func TestFirstStepNeverEnds(t *testing.T) {
	ctx := table{
		pad: logits(0.1, 0.1, 0.6, 0.1, 0.1),
		sos: logits(0.01, 0.01, 0.9, 0.05, 0.03),
		eos: logits(0.1, 0.1, 0.6, 0.1, 0.1),
		a:   logits(0.01, 0.01, 0.9, 0.05, 0.03),
		b:   logits(0.01, 0.01, 0.9, 0.05, 0.03),
	}
	for width := 1; width <= 4; width++ {
		h := newSearch(width, 8).Run(ctx)
		if !reflect.DeepEqual(h.Symbols, []int{a, eos}) {
			t.Errorf("width %d: symbols %v, want [a eos]", width, h.Symbols)
		}
	}
}

func TestMaxLengthTerminates(t *testing.T) {
	ctx := table{
		pad: logits(0.1, 0.1, 1e-6, 0.4, 0.4),
		sos: logits(0.1, 0.1, 1e-6, 0.4, 0.4),
		eos: logits(0.1, 0.1, 1e-6, 0.4, 0.4),
		a:   logits(0.1, 0.1, 1e-6, 0.1, 0.8),
		b:   logits(0.1, 0.1, 1e-6, 0.8, 0.1),
	}
	for _, width := range []int{1, 3} {
		s := newSearch(width, 5)
		beam := s.Begin(ctx)
		for !s.Done(beam) {
			s.Step(ctx, beam)
			if beam.Steps > s.MaxLength {
				t.Fatalf("width %d: ran %d steps", width, beam.Steps)
			}
			if len(beam.Active)+len(beam.Finished) > width*beam.Steps {
				t.Fatalf("width %d: working set grew to %d", width, len(beam.Active))
			}
			if len(beam.Active) > width {
				t.Fatalf("width %d: %d active hypotheses", width, len(beam.Active))
			}
		}
		h, ok := beam.Best()
		if !ok || len(h.Symbols) != 5 {
			t.Errorf("width %d: best %v", width, h.Symbols)
		}
		for _, sym := range h.Symbols {
			if sym == pad || sym == sos || sym == eos {
				t.Errorf("width %d: emitted reserved symbol in %v", width, h.Symbols)
			}
		}
	}
}

func randomTable(r *rand.Rand, symbols int) table {
	t := make(table, symbols)
	for i := range t {
		t[i] = make([]float32, symbols)
		for j := range t[i] {
			t[i][j] = float32(r.NormFloat64() * 3)
		}
	}
	return t
}

func TestWidthOneIsGreedy(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		ctx := randomTable(r, 9)
		s := newSearch(1, 12)
		beam := s.Run(ctx)
		greedy := s.Greedy(ctx)
		if !reflect.DeepEqual(beam.Symbols, greedy.Symbols) || beam.Score != greedy.Score {
			t.Fatalf("table %d: beam %v (%v) != greedy %v (%v)", n, beam.Symbols, beam.Score, greedy.Symbols, greedy.Score)
		}
	}
}

func TestWideBeamBounded(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for n := 0; n < 50; n++ {
		ctx := randomTable(r, 7)
		h := newSearch(4, 10).Run(ctx)
		if len(h.Symbols) == 0 || len(h.Symbols) > 10 {
			t.Fatalf("table %d: result length %d", n, len(h.Symbols))
		}
		if h.Symbols[0] == eos {
			t.Fatalf("table %d: ended on the first step", n)
		}
		if !h.Ended(eos) && len(h.Symbols) != 10 {
			t.Fatalf("table %d: unfinished result of length %d", n, len(h.Symbols))
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	ctx := randomTable(rand.New(rand.NewSource(3)), 11)
	s := newSearch(3, 16)
	first := s.Run(ctx)
	for i := 0; i < 10; i++ {
		again := s.Run(ctx)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, again, first)
		}
	}
}

func TestBestTieBreaksOnLength(t *testing.T) {
	beam := &Beam{Finished: []Hypothesis{
		{Symbols: []int{a, b, eos}, Score: -1},
		{Symbols: []int{a, eos}, Score: -1},
		{Symbols: []int{b, b, b, eos}, Score: -2},
	}}
	h, ok := beam.Best()
	if !ok || len(h.Symbols) != 2 {
		t.Errorf("Best = %v", h.Symbols)
	}
	if _, ok := (&Beam{}).Best(); ok {
		t.Error("empty beam has a best hypothesis")
	}
}
