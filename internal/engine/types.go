package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mode says how the elements of a Sequence are interpreted.
type Mode int

const (
	ModeArray  Mode = iota // integers
	ModeString             // single characters
)

func (m Mode) String() string {
	switch m {
	case ModeArray:
		return "array"
	case ModeString:
		return "string"
	default:
		return "unknown"
	}
}

// ParseMode maps "array" or "string" to a Mode. An empty string is array mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "array":
		return ModeArray, nil
	case "string":
		return ModeString, nil
	}
	return ModeArray, fmt.Errorf("%w: unknown input type %q", ErrInvalidInput, s)
}

// Sequence is an ordered list of integers or characters. Characters are
// stored as their code points so both modes share one representation.
type Sequence struct {
	mode   Mode
	values []int
}

// Ints builds an array-mode sequence from a copy of vals.
func Ints(vals ...int) Sequence {
	return Sequence{mode: ModeArray, values: append([]int(nil), vals...)}
}

// Chars builds a string-mode sequence with one element per rune of s.
func Chars(s string) Sequence {
	runes := []rune(s)
	values := make([]int, len(runes))
	for i, r := range runes {
		values[i] = int(r)
	}
	return Sequence{mode: ModeString, values: values}
}

// Mode returns the element interpretation.
func (s Sequence) Mode() Mode { return s.mode }

// Len returns the number of elements.
func (s Sequence) Len() int { return len(s.values) }

// At returns the raw value of element i (the code point in string mode).
func (s Sequence) At(i int) int { return s.values[i] }

// Values returns a copy of the raw element values.
func (s Sequence) Values() []int { return append([]int(nil), s.values...) }

// Format renders element i the way a user typed it.
func (s Sequence) Format(i int) string {
	if s.mode == ModeString {
		return string(rune(s.values[i]))
	}
	return strconv.Itoa(s.values[i])
}

// Slice returns a copy of the elements in [start, end).
func (s Sequence) Slice(start, end int) Sequence {
	return Sequence{mode: s.mode, values: append([]int(nil), s.values[start:end]...)}
}

// Equal reports whether both sequences have the same mode and elements.
func (s Sequence) Equal(o Sequence) bool {
	if s.mode != o.mode || len(s.values) != len(o.values) {
		return false
	}
	for i := range s.values {
		if s.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// sameAs reports whether s and o share their backing storage. Sequences
// are never mutated after construction, so shared storage means equal
// contents.
func (s Sequence) sameAs(o Sequence) bool {
	if s.mode != o.mode || len(s.values) != len(o.values) {
		return false
	}
	return len(s.values) == 0 || &s.values[0] == &o.values[0]
}

// Elements returns every element formatted as text.
func (s Sequence) Elements() []string {
	out := make([]string, len(s.values))
	for i := range s.values {
		out[i] = s.Format(i)
	}
	return out
}

// String renders "abc" in string mode and "[1, 2, 3]" in array mode.
func (s Sequence) String() string {
	if s.mode == ModeString {
		return strings.Join(s.Elements(), "")
	}
	return "[" + strings.Join(s.Elements(), ", ") + "]"
}

// MarshalJSON encodes numbers in array mode and one-character strings in
// string mode.
func (s Sequence) MarshalJSON() ([]byte, error) {
	if s.mode == ModeString {
		return json.Marshal(s.Elements())
	}
	if s.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.values)
}

// UnmarshalJSON accepts either a list of integers or a list of
// single-character strings.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: elements must be a list", ErrInvalidInput)
	}
	if len(raw) == 0 {
		*s = Sequence{mode: ModeArray}
		return nil
	}

	if bytes.HasPrefix(bytes.TrimSpace(raw[0]), []byte(`"`)) {
		values := make([]int, len(raw))
		for i, r := range raw {
			var str string
			if err := json.Unmarshal(r, &str); err != nil || utf8.RuneCountInString(str) != 1 {
				return fmt.Errorf("%w: element %d must be a single character", ErrInvalidInput, i)
			}
			ch, _ := utf8.DecodeRuneInString(str)
			values[i] = int(ch)
		}
		*s = Sequence{mode: ModeString, values: values}
		return nil
	}

	values := make([]int, len(raw))
	for i, r := range raw {
		// null decodes into an int without error
		if isNull(r) {
			return fmt.Errorf("%w: element %d must be an integer", ErrInvalidInput, i)
		}
		if err := json.Unmarshal(r, &values[i]); err != nil {
			return fmt.Errorf("%w: element %d must be an integer", ErrInvalidInput, i)
		}
	}
	*s = Sequence{mode: ModeArray, values: values}
	return nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// Algorithm names a sliding-window computation.
type Algorithm string

const (
	Sum              Algorithm = "sum"
	Max              Algorithm = "max"
	Min              Algorithm = "min"
	Average          Algorithm = "average"
	LongestUnique    Algorithm = "longest-unique-substring"
	PermutationMatch Algorithm = "permutation-match"
)

// Algorithms lists every supported algorithm in display order.
var Algorithms = []Algorithm{Sum, Max, Min, Average, LongestUnique, PermutationMatch}

var algorithmAliases = map[string]Algorithm{
	"avg":                   Average,
	"mean":                  Average,
	"longest_substring":     LongestUnique,
	"longest-substring":     LongestUnique,
	"longest_unique":        LongestUnique,
	"permutation_in_string": PermutationMatch,
	"permutation":           PermutationMatch,
}

// ParseAlgorithm resolves a key or one of its aliases.
func ParseAlgorithm(s string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Algorithms {
		if string(a) == key {
			return a, nil
		}
	}
	if a, ok := algorithmAliases[key]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

// Numeric reports whether the algorithm reduces integers to a number.
func (a Algorithm) Numeric() bool {
	switch a {
	case Sum, Max, Min, Average:
		return true
	}
	return false
}

// Label returns a human readable name.
func (a Algorithm) Label() string {
	switch a {
	case Sum:
		return "Sum"
	case Max:
		return "Maximum"
	case Min:
		return "Minimum"
	case Average:
		return "Average"
	case LongestUnique:
		return "Longest Unique Substring"
	case PermutationMatch:
		return "Permutation in String"
	}
	return string(a)
}

// DefaultWindowType is the window type used when none is given.
func (a Algorithm) DefaultWindowType() WindowType {
	if a == LongestUnique {
		return Variable
	}
	return Fixed
}

// WindowType distinguishes constant-length windows from scanned ones.
type WindowType string

const (
	Fixed    WindowType = "fixed"
	Variable WindowType = "variable"
)

// ParseWindowType resolves "fixed" or "variable".
func ParseWindowType(s string) (WindowType, error) {
	switch WindowType(strings.ToLower(strings.TrimSpace(s))) {
	case Fixed:
		return Fixed, nil
	case Variable:
		return Variable, nil
	}
	return "", fmt.Errorf("%w: window type %q", ErrUnsupportedAlgorithm, s)
}

// WindowSpec configures one run.
type WindowSpec struct {
	Algorithm  Algorithm
	WindowType WindowType
	WindowSize int
	Pattern    Sequence
}

// Normalized fills the window type from the algorithm when empty and makes
// the pattern length the window size for permutation matching.
func (w WindowSpec) Normalized() WindowSpec {
	if w.WindowType == "" {
		w.WindowType = w.Algorithm.DefaultWindowType()
	}
	if w.Algorithm == PermutationMatch {
		w.WindowSize = w.Pattern.Len()
	}
	return w
}

// Validate checks w against the sequence it will run over.
func (w WindowSpec) Validate(seq Sequence) error {
	if seq.Len() == 0 {
		return fmt.Errorf("%w: sequence is empty", ErrInvalidInput)
	}
	if w.WindowType != Fixed && w.WindowType != Variable {
		return fmt.Errorf("%w: window type %q", ErrUnsupportedAlgorithm, w.WindowType)
	}

	switch {
	case w.Algorithm.Numeric():
		if seq.Mode() != ModeArray {
			return fmt.Errorf("%w: %s needs numeric input", ErrInvalidInput, w.Algorithm)
		}
		if w.WindowType != Fixed {
			return fmt.Errorf("%w: %s runs on fixed windows only", ErrUnsupportedAlgorithm, w.Algorithm)
		}
		if w.WindowSize < 1 {
			return fmt.Errorf("%w: window size must be at least 1, got %d", ErrInvalidInput, w.WindowSize)
		}
	case w.Algorithm == PermutationMatch:
		if w.Pattern.Len() == 0 {
			return ErrEmptyPattern
		}
		if w.Pattern.Mode() != seq.Mode() {
			return fmt.Errorf("%w: pattern is %s input but sequence is %s input", ErrInvalidInput, w.Pattern.Mode(), seq.Mode())
		}
		if w.WindowType != Fixed {
			return fmt.Errorf("%w: %s runs on fixed windows only", ErrUnsupportedAlgorithm, w.Algorithm)
		}
	case w.Algorithm == LongestUnique:
		if w.WindowType == Fixed && w.WindowSize < 1 {
			return fmt.Errorf("%w: window size must be at least 1, got %d", ErrInvalidInput, w.WindowSize)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, w.Algorithm)
	}
	return nil
}

// Value is a step outcome: a number or a match flag.
type Value struct {
	isBool bool
	num    float64
	truth  bool
}

// Number wraps a numeric outcome.
func Number(f float64) Value { return Value{num: f} }

// Bool wraps a boolean outcome.
func Bool(b bool) Value { return Value{isBool: true, truth: b} }

// IsBool reports whether the value is a match flag.
func (v Value) IsBool() bool { return v.isBool }

// Float returns the numeric outcome; match flags read as 1 or 0.
func (v Value) Float() float64 {
	if v.isBool {
		if v.truth {
			return 1
		}
		return 0
	}
	return v.num
}

// Truth returns the match flag; numbers are true when non-zero.
func (v Value) Truth() bool {
	if v.isBool {
		return v.truth
	}
	return v.num != 0
}

// String renders the exact value.
func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.truth)
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// Display renders the value for people: whole numbers print as integers,
// anything else is rounded to precision decimals.
func (v Value) Display(precision int) string {
	if v.isBool || v.num == math.Trunc(v.num) {
		return v.String()
	}
	return strconv.FormatFloat(v.num, 'f', precision, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isBool {
		return json.Marshal(v.truth)
	}
	return json.Marshal(v.num)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return fmt.Errorf("%w: result must be a number or a boolean", ErrInvalidInput)
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Bool(b)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: result must be a number or a boolean", ErrInvalidInput)
	}
	*v = Number(f)
	return nil
}

// Span is an inclusive index range.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of elements covered.
func (s Span) Len() int { return s.End - s.Start + 1 }

// StepResult is one frame of an animation.
type StepResult struct {
	Index       int      `json:"index"`
	WindowStart int      `json:"window_start"`
	WindowEnd   int      `json:"window_end"`
	Content     Sequence `json:"window"`
	Value       Value    `json:"result"`
	Description string   `json:"description"`
	Best        *Span    `json:"best,omitempty"`
}

// Span returns the current window as a Span.
func (r StepResult) Span() Span { return Span{Start: r.WindowStart, End: r.WindowEnd} }
