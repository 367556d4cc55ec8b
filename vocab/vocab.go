// Package vocab implements the symbol tables of the transliteration model
package vocab

import "github.com/pkg/errors"
import "strings"
import "unicode/utf8"

// Reserved indices, identical in the input and the output table.
const (
	Pad = 0
	SOS = 1
	EOS = 2
)

var specials = [...]string{"<pad>", "<s>", "</s>"}

// Table maps single-rune symbols to indices and back.
type Table struct {
	symbols []string
	index   map[rune]int
}

// New creates a table from its symbol list. The list must start with the
// three reserved symbols, every other symbol must be exactly one rune.
func New(symbols []string) (*Table, error) {
	if len(symbols) <= len(specials) {
		return nil, errors.Errorf("vocab: %d symbols, need more than %d", len(symbols), len(specials))
	}
	for i, s := range specials {
		if symbols[i] != s {
			return nil, errors.Errorf("vocab: symbol %d is %q, want %q", i, symbols[i], s)
		}
	}
	t := &Table{
		symbols: append([]string(nil), symbols...),
		index:   make(map[rune]int, len(symbols)),
	}
	for i := len(specials); i < len(symbols); i++ {
		r, size := utf8.DecodeRuneInString(symbols[i])
		if r == utf8.RuneError || size != len(symbols[i]) {
			return nil, errors.Errorf("vocab: symbol %d (%q) is not a single rune", i, symbols[i])
		}
		if _, ok := t.index[r]; ok {
			return nil, errors.Errorf("vocab: duplicate symbol %q", symbols[i])
		}
		t.index[r] = i
	}
	return t, nil
}

// MustNew creates a table or panics
func MustNew(symbols []string) *Table {
	t, err := New(symbols)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// Len returns the number of indices including the reserved ones.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Symbols returns a copy of the symbol list.
func (t *Table) Symbols() []string {
	return append([]string(nil), t.symbols...)
}

// Encode returns the index of rune r.
func (t *Table) Encode(r rune) (int, bool) {
	i, ok := t.index[r]
	return i, ok
}

// EncodeWord validates a word and returns it framed as [SOS, ids..., EOS].
// Every unknown rune is reported, once, in order of first occurrence.
func (t *Table) EncodeWord(word string) ([]int, error) {
	if word == "" {
		return nil, ErrEmptyInput
	}
	ids := make([]int, 1, len(word)+2)
	ids[0] = SOS
	var invalid []rune
	for _, r := range word {
		if i, ok := t.index[r]; ok {
			ids = append(ids, i)
			continue
		}
		if !containsRune(invalid, r) {
			invalid = append(invalid, r)
		}
	}
	if invalid != nil {
		return nil, &InvalidCharsError{Chars: invalid}
	}
	return append(ids, EOS), nil
}

// Decode returns the printable form of index id. Reserved and out of range
// indices print as the empty string.
func (t *Table) Decode(id int) string {
	if id < len(specials) || id >= len(t.symbols) {
		return ""
	}
	return t.symbols[id]
}

// DecodeSequence concatenates the printable forms of ids.
func (t *Table) DecodeSequence(ids []int) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(t.Decode(id))
	}
	return b.String()
}

func containsRune(rs []rune, r rune) bool {
	for _, v := range rs {
		if v == r {
			return true
		}
	}
	return false
}

// DefaultInput is the input alphabet: reserved symbols and lowercase ascii letters.
func DefaultInput() []string {
	out := append([]string(nil), specials[:]...)
	for c := 'a'; c <= 'z'; c++ {
		out = append(out, string(c))
	}
	return out
}

// DefaultOutput is the output alphabet: reserved symbols, katakana from
// small a to vu, and the prolonged sound mark.
func DefaultOutput() []string {
	out := append([]string(nil), specials[:]...)
	for c := 'ァ'; c <= 'ヴ'; c++ {
		out = append(out, string(c))
	}
	return append(out, "ー")
}
