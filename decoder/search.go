package decoder

import "math"
import "sort"

import "github.com/neurlang/kanalizer/tensor"

// Hypothesis is a candidate output.
type Hypothesis struct {
	Symbols []int   // emitted symbols, ending with EOS when finished by the model
	Score   float64 // sum of log-probabilities of Symbols
	State   State   // state after the last symbol
}

// Ended reports whether the hypothesis ends with symbol eos.
func (h *Hypothesis) Ended(eos int) bool {
	return len(h.Symbols) > 0 && h.Symbols[len(h.Symbols)-1] == eos
}

// better orders hypotheses by score, then by length.
func better(a, b *Hypothesis) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return len(a.Symbols) < len(b.Symbols)
}

// Search is a beam search configuration.
type Search struct {
	Width     int   // number of hypotheses kept after each step
	MaxLength int   // number of symbols after which a hypothesis is finished regardless
	SOS       int   // symbol fed to the first step
	EOS       int   // symbol finishing a hypothesis
	Banned    []int // symbols never emitted
}

// Beam is the working set of one search.
type Beam struct {
	Active   []Hypothesis
	Finished []Hypothesis
	Steps    int
}

// Begin returns a beam holding the single empty hypothesis.
func (s *Search) Begin(ctx Context) *Beam {
	return &Beam{Active: []Hypothesis{{State: ctx.Start()}}}
}

// Done reports whether further steps can change the result.
func (s *Search) Done(b *Beam) bool {
	if len(b.Active) == 0 || b.Steps >= s.MaxLength {
		return true
	}
	if len(b.Finished) == 0 {
		return false
	}
	// log-probabilities are never positive, active scores can only drop
	best := b.best(b.Finished)
	for i := range b.Active {
		if b.Active[i].Score > best.Score {
			return false
		}
	}
	return true
}

type candidate struct {
	parent int
	symbol int
	score  float64
}

// scores returns the log-probabilities of the next symbol with banned
// symbols removed.
func (s *Search) scores(logits []float32, first bool) []float64 {
	lp := make([]float32, len(logits))
	tensor.LogSoftmax(lp, logits)
	out := make([]float64, len(lp))
	for i, v := range lp {
		out[i] = float64(v)
	}
	for _, b := range s.Banned {
		if b >= 0 && b < len(out) {
			out[b] = math.Inf(-1)
		}
	}
	if first && s.EOS >= 0 && s.EOS < len(out) {
		out[s.EOS] = math.Inf(-1)
	}
	return out
}

// Step expands every active hypothesis, keeps the globally best Width
// continuations and moves the finished ones out of the active set.
func (s *Search) Step(ctx Context, b *Beam) {
	if s.Done(b) {
		return
	}
	var cands []candidate
	var nexts = make([]State, len(b.Active))
	for p := range b.Active {
		h := &b.Active[p]
		prev := s.SOS
		if len(h.Symbols) > 0 {
			prev = h.Symbols[len(h.Symbols)-1]
		}
		logits, next := ctx.Step(h.State, prev)
		nexts[p] = next
		lp := s.scores(logits, len(h.Symbols) == 0)

		order := make([]int, len(lp))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			return lp[order[i]] > lp[order[j]]
		})
		for _, sym := range order[:minInt(s.Width, len(order))] {
			if math.IsInf(lp[sym], -1) {
				break
			}
			cands = append(cands, candidate{parent: p, symbol: sym, score: h.Score + lp[sym]})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
	if len(cands) > s.Width {
		cands = cands[:s.Width]
	}

	active := make([]Hypothesis, 0, len(cands))
	for _, c := range cands {
		parent := &b.Active[c.parent]
		symbols := make([]int, len(parent.Symbols)+1)
		copy(symbols, parent.Symbols)
		symbols[len(parent.Symbols)] = c.symbol
		h := Hypothesis{Symbols: symbols, Score: c.score, State: nexts[c.parent]}
		if c.symbol == s.EOS || len(symbols) >= s.MaxLength {
			b.Finished = append(b.Finished, h)
		} else {
			active = append(active, h)
		}
	}
	b.Active = active
	b.Steps++
}

func (b *Beam) best(hs []Hypothesis) *Hypothesis {
	var out *Hypothesis
	for i := range hs {
		if out == nil || better(&hs[i], out) {
			out = &hs[i]
		}
	}
	return out
}

// Best returns the winning hypothesis: the best finished one, or the best
// active one if nothing finished. The second result is false for an empty beam.
func (b *Beam) Best() (Hypothesis, bool) {
	h := b.best(b.Finished)
	if h == nil {
		h = b.best(b.Active)
	}
	if h == nil {
		return Hypothesis{}, false
	}
	return *h, true
}

// Run searches until Done and returns the best hypothesis.
func (s *Search) Run(ctx Context) Hypothesis {
	b := s.Begin(ctx)
	for !s.Done(b) {
		s.Step(ctx, b)
	}
	h, _ := b.Best()
	return h
}

// Greedy follows the single most likely symbol at each step. It is the
// reference a beam of width 1 must agree with.
func (s *Search) Greedy(ctx Context) Hypothesis {
	h := Hypothesis{State: ctx.Start()}
	prev := s.SOS
	for len(h.Symbols) < s.MaxLength {
		logits, next := ctx.Step(h.State, prev)
		lp := s.scores(logits, len(h.Symbols) == 0)
		sym := 0
		for i := range lp {
			if lp[i] > lp[sym] {
				sym = i
			}
		}
		if math.IsInf(lp[sym], -1) {
			break
		}
		h.Symbols = append(h.Symbols, sym)
		h.Score += lp[sym]
		h.State = next
		if sym == s.EOS {
			break
		}
		prev = sym
	}
	return h
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
