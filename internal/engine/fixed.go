package engine

import (
	"fmt"
	"strings"
)

// MaxStepCount returns how many fixed windows of windowSize fit in seq.
// It is zero when the window is larger than the sequence.
func MaxStepCount(seq Sequence, windowSize int) int {
	if windowSize < 1 {
		return 0
	}
	return max(0, seq.Len()-windowSize+1)
}

func checkBounds(seq Sequence, windowStart, windowSize int) error {
	if windowSize < 1 {
		return fmt.Errorf("%w: window size must be at least 1, got %d", ErrInvalidInput, windowSize)
	}
	// compared without adding so huge starts or sizes cannot wrap
	if windowStart < 0 || windowStart > seq.Len() || windowSize > seq.Len()-windowStart {
		return fmt.Errorf("%w: window of %d starting at %d with %d elements", ErrOutOfBounds, windowSize, windowStart, seq.Len())
	}
	return nil
}

// ComputeFixedWindow evaluates alg over seq[windowStart : windowStart+windowSize].
//
// Sum, max and min are exact; average is the unrounded quotient. For
// LongestUnique the value is the window length when every element is
// distinct and 0 otherwise. Permutation matching has its own entry point,
// AdvancePermutationMatch.
func ComputeFixedWindow(seq Sequence, windowStart, windowSize int, alg Algorithm) (StepResult, error) {
	if err := checkBounds(seq, windowStart, windowSize); err != nil {
		return StepResult{}, err
	}

	window := seq.Slice(windowStart, windowStart+windowSize)
	res := StepResult{
		WindowStart: windowStart,
		WindowEnd:   windowStart + windowSize - 1,
		Content:     window,
	}

	switch alg {
	case Sum, Max, Min, Average:
		if seq.Mode() != ModeArray {
			return StepResult{}, fmt.Errorf("%w: %s needs numeric input", ErrInvalidInput, alg)
		}
		res.Value, res.Description = reduce(window, alg)
	case LongestUnique:
		res.Value, res.Description = uniqueWindow(window)
	default:
		return StepResult{}, fmt.Errorf("%w: %q on a fixed window", ErrUnsupportedAlgorithm, alg)
	}
	return res, nil
}

func reduce(window Sequence, alg Algorithm) (Value, string) {
	elems := window.Elements()
	values := window.values

	total := 0
	for _, v := range values {
		total += v
	}

	switch alg {
	case Max:
		best := values[0]
		for _, v := range values[1:] {
			best = max(best, v)
		}
		return Number(float64(best)), fmt.Sprintf("Maximum in window: max(%s) = %d", strings.Join(elems, ", "), best)
	case Min:
		best := values[0]
		for _, v := range values[1:] {
			best = min(best, v)
		}
		return Number(float64(best)), fmt.Sprintf("Minimum in window: min(%s) = %d", strings.Join(elems, ", "), best)
	case Average:
		avg := Number(float64(total) / float64(len(values)))
		return avg, fmt.Sprintf("Average of window: (%s) / %d = %.2f", strings.Join(elems, " + "), len(values), avg.Float())
	default:
		return Number(float64(total)), fmt.Sprintf("Sum of window: %s = %d", strings.Join(elems, " + "), total)
	}
}

func uniqueWindow(window Sequence) (Value, string) {
	seen := make(map[int]int, window.Len())
	for i, v := range window.values {
		if j, ok := seen[v]; ok {
			return Number(0), fmt.Sprintf("Window %s repeats %q at offsets %d and %d", window, window.Format(i), j, i)
		}
		seen[v] = i
	}
	return Number(float64(window.Len())), fmt.Sprintf("Window %s has no repeating elements: length %d", window, window.Len())
}

// CalculateStep evaluates the window at windowStart for spec, dispatching to
// ComputeFixedWindow or AdvancePermutationMatch. It is the single-step entry
// point used by request/response callers.
func CalculateStep(seq Sequence, windowStart int, spec WindowSpec) (StepResult, error) {
	spec = spec.Normalized()
	switch {
	case spec.Algorithm == PermutationMatch:
		return AdvancePermutationMatch(seq, spec.Pattern, windowStart)
	case spec.Algorithm.Numeric(), spec.Algorithm == LongestUnique:
		return ComputeFixedWindow(seq, windowStart, spec.WindowSize, spec.Algorithm)
	}
	return StepResult{}, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, spec.Algorithm)
}
