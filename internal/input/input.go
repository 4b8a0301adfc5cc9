// Package input turns raw user text into engine sequences.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kmacinski/slidewin/internal/engine"
)

// ValidationError names the element that failed to parse. Index is -1 when
// the input as a whole is rejected.
type ValidationError struct {
	Index  int
	Token  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("element %d (%q): %s", e.Index, e.Token, e.Reason)
}

// Unwrap lets callers match engine.ErrInvalidInput.
func (e *ValidationError) Unwrap() error { return engine.ErrInvalidInput }

// Parse validates raw against the declared type ("array" or "string",
// empty meaning array).
//
// Arrays are comma-separated integers; blank tokens are skipped. Strings
// become one element per character after trimming surrounding space.
func Parse(raw, typ string) (engine.Sequence, error) {
	mode, err := engine.ParseMode(typ)
	if err != nil {
		return engine.Sequence{}, &ValidationError{Index: -1, Reason: "Invalid input type"}
	}
	return ParseMode(raw, mode)
}

// ParseMode is Parse with an already resolved mode.
func ParseMode(raw string, mode engine.Mode) (engine.Sequence, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return engine.Sequence{}, &ValidationError{Index: -1, Reason: "Input cannot be empty"}
	}

	if mode == engine.ModeString {
		return engine.Chars(text), nil
	}

	var values []int
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return engine.Sequence{}, &ValidationError{
				Index:  len(values),
				Token:  tok,
				Reason: "Please enter valid numbers separated by commas",
			}
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return engine.Sequence{}, &ValidationError{Index: -1, Reason: "Please enter at least one number"}
	}
	return engine.Ints(values...), nil
}

// ParsePattern parses a permutation pattern in the same mode as the
// sequence it will be matched against. An empty pattern yields an empty
// sequence so the engine can report ErrEmptyPattern itself.
func ParsePattern(raw string, mode engine.Mode) (engine.Sequence, error) {
	if strings.TrimSpace(raw) == "" {
		if mode == engine.ModeString {
			return engine.Chars(""), nil
		}
		return engine.Ints(), nil
	}
	return ParseMode(raw, mode)
}

// ParseSpec resolves textual window settings for seq into a normalized,
// validated spec. An empty windowType takes the algorithm's default; the
// pattern is only read for permutation matching.
func ParseSpec(seq engine.Sequence, algorithm, windowType string, size int, pattern string) (engine.WindowSpec, error) {
	alg, err := engine.ParseAlgorithm(algorithm)
	if err != nil {
		return engine.WindowSpec{}, err
	}
	spec := engine.WindowSpec{Algorithm: alg, WindowSize: size}
	if windowType != "" {
		if spec.WindowType, err = engine.ParseWindowType(windowType); err != nil {
			return engine.WindowSpec{}, err
		}
	}
	if alg == engine.PermutationMatch {
		if spec.Pattern, err = ParsePattern(pattern, seq.Mode()); err != nil {
			return engine.WindowSpec{}, err
		}
	}

	spec = spec.Normalized()
	if err := spec.Validate(seq); err != nil {
		return engine.WindowSpec{}, err
	}
	return spec, nil
}
