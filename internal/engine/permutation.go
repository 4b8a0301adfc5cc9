package engine

import (
	"fmt"
	"maps"
)

func frequencies(values []int) map[int]int {
	freq := make(map[int]int, len(values))
	for _, v := range values {
		freq[v]++
	}
	return freq
}

// AdvancePermutationMatch reports whether the window of len(pattern)
// elements starting at windowStart is a permutation of pattern. It builds
// both frequency profiles from scratch, so any start can be asked for in any
// order.
func AdvancePermutationMatch(seq, pattern Sequence, windowStart int) (StepResult, error) {
	if pattern.Len() == 0 {
		return StepResult{}, ErrEmptyPattern
	}
	if err := checkBounds(seq, windowStart, pattern.Len()); err != nil {
		return StepResult{}, err
	}

	window := seq.Slice(windowStart, windowStart+pattern.Len())
	match := maps.Equal(frequencies(pattern.values), frequencies(window.values))
	return StepResult{
		WindowStart: windowStart,
		WindowEnd:   windowStart + pattern.Len() - 1,
		Content:     window,
		Value:       Bool(match),
		Description: describeMatch(window, pattern, match),
	}, nil
}

// AdvancePermutationScan slides the permutation window one position using
// the frequency maps in state instead of rebuilding them. The first call
// loads the window at start 0. Results agree with AdvancePermutationMatch
// for every start.
func AdvancePermutationScan(seq, pattern Sequence, state *ScanState) (StepResult, error) {
	if pattern.Len() == 0 {
		return StepResult{}, ErrEmptyPattern
	}
	if err := state.check(PermutationMatch, seq, pattern); err != nil {
		return StepResult{}, err
	}

	m := pattern.Len()
	if state.Right == 0 {
		if m > seq.Len() {
			return StepResult{}, ErrScanComplete
		}
		for i := 0; i < m; i++ {
			state.add(seq.values[i])
		}
		state.Right = m
	} else {
		if state.Right >= seq.Len() {
			return StepResult{}, ErrScanComplete
		}
		state.remove(seq.values[state.Left])
		state.add(seq.values[state.Right])
		state.Left++
		state.Right++
	}

	window := seq.Slice(state.Left, state.Right)
	match := state.Matches == len(state.PatternFreq)
	return StepResult{
		WindowStart: state.Left,
		WindowEnd:   state.Right - 1,
		Content:     window,
		Value:       Bool(match),
		Description: describeMatch(window, pattern, match),
	}, nil
}

func (st *ScanState) add(v int) {
	want, tracked := st.PatternFreq[v]
	if tracked && st.WindowFreq[v] == want {
		st.Matches--
	}
	st.WindowFreq[v]++
	if tracked && st.WindowFreq[v] == want {
		st.Matches++
	}
}

func (st *ScanState) remove(v int) {
	want, tracked := st.PatternFreq[v]
	if tracked && st.WindowFreq[v] == want {
		st.Matches--
	}
	st.WindowFreq[v]--
	if st.WindowFreq[v] == 0 {
		delete(st.WindowFreq, v)
	}
	if tracked && st.WindowFreq[v] == want {
		st.Matches++
	}
}

func describeMatch(window, pattern Sequence, match bool) string {
	if match {
		return fmt.Sprintf("Window %s is a permutation of %s", window, pattern)
	}
	return fmt.Sprintf("Window %s is not a permutation of %s", window, pattern)
}
