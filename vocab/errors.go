package vocab

import "fmt"
import "github.com/pkg/errors"

// ErrEmptyInput is returned for a word without characters.
var ErrEmptyInput = errors.New("input is empty")

// InvalidCharsError is returned for a word containing characters outside
// the input alphabet.
type InvalidCharsError struct {
	// Chars holds every unsupported character, deduplicated, in order of first occurrence.
	Chars []rune
}

func (e *InvalidCharsError) Error() string {
	return fmt.Sprintf("invalid characters: %q", e.Chars)
}
