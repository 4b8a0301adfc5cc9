package engine

import (
	"fmt"
	"strings"
)

// AdvanceLongestUniqueSubstring performs one transition of the two-pointer
// scan for the longest run of distinct elements.
//
// The element at state.Right joins the window. If it was already seen at or
// after state.Left, Left jumps just past that earlier occurrence. The best
// window only changes on a strictly longer window, so ties keep the earliest
// one. Once Right reaches the end ErrScanComplete is returned and the state
// is left as is; a failed call never mutates the state.
func AdvanceLongestUniqueSubstring(seq Sequence, state *ScanState) (StepResult, error) {
	if err := state.check(LongestUnique, seq, Sequence{}); err != nil {
		return StepResult{}, err
	}
	if state.Right >= seq.Len() {
		return StepResult{}, ErrScanComplete
	}

	right := state.Right
	c := seq.values[right]

	var notes []string
	notes = append(notes, fmt.Sprintf("Add %s at index %d", seq.Format(right), right))
	if prev, ok := state.LastSeen[c]; ok && prev >= state.Left {
		state.Left = prev + 1
		notes = append(notes, fmt.Sprintf("%s repeats index %d, left moves to %d", seq.Format(right), prev, state.Left))
	}
	state.LastSeen[c] = right

	length := right - state.Left + 1
	if length > state.BestLength {
		state.BestLength = length
		state.BestStart = state.Left
		state.BestEnd = right
		notes = append(notes, fmt.Sprintf("new best length %d", length))
	}

	window := seq.Slice(state.Left, right+1)
	best := Span{Start: state.BestStart, End: state.BestEnd}
	notes = append(notes, fmt.Sprintf("window %s (length %d), best %s (length %d)",
		window, length, seq.Slice(best.Start, best.End+1), state.BestLength))

	state.Right++

	return StepResult{
		WindowStart: state.Left,
		WindowEnd:   right,
		Content:     window,
		Value:       Number(float64(length)),
		Description: strings.Join(notes, "; "),
		Best:        &best,
	}, nil
}
