package engine

import "fmt"

// Run steps one WindowSpec over one Sequence. It owns its ScanState, so a
// new configuration means a new Run. A Run is not safe for concurrent use.
type Run struct {
	seq   Sequence
	spec  WindowSpec
	state *ScanState
	pos   int
}

// NewRun validates spec against seq and returns a run positioned before its
// first step.
func NewRun(seq Sequence, spec WindowSpec) (*Run, error) {
	spec = spec.Normalized()
	if err := spec.Validate(seq); err != nil {
		return nil, err
	}
	r := &Run{seq: seq, spec: spec}
	r.Reset()
	return r, nil
}

// Sequence returns the input the run steps over.
func (r *Run) Sequence() Sequence { return r.seq }

// Spec returns the normalized configuration.
func (r *Run) Spec() WindowSpec { return r.spec }

// State returns the live scan state. Callers must treat it as read-only.
func (r *Run) State() *ScanState { return r.state }

// scanning reports whether steps depend on the previous one.
func (r *Run) scanning() bool {
	return r.spec.Algorithm == LongestUnique && r.spec.WindowType == Variable
}

// Total returns the number of steps the run will emit. Zero means there is
// nothing to step through and navigation should be disabled.
func (r *Run) Total() int {
	if r.scanning() {
		return r.seq.Len()
	}
	return MaxStepCount(r.seq, r.spec.WindowSize)
}

// Position returns how many steps have been emitted since the last reset.
func (r *Run) Position() int { return r.pos }

// Done reports whether Next has nothing left to emit.
func (r *Run) Done() bool { return r.pos >= r.Total() }

// Reset discards the scan state and rewinds to the first step.
func (r *Run) Reset() {
	r.state = ResetScanState(r.seq, r.spec)
	r.pos = 0
}

// Next emits the following step. At the end it returns ErrScanComplete;
// on any error the run does not advance.
func (r *Run) Next() (StepResult, error) {
	if r.Done() {
		return StepResult{}, ErrScanComplete
	}

	var (
		res StepResult
		err error
	)
	switch {
	case r.scanning():
		res, err = AdvanceLongestUniqueSubstring(r.seq, r.state)
	case r.spec.Algorithm == PermutationMatch:
		res, err = AdvancePermutationScan(r.seq, r.spec.Pattern, r.state)
	default:
		res, err = ComputeFixedWindow(r.seq, r.pos, r.spec.WindowSize, r.spec.Algorithm)
	}
	if err != nil {
		return StepResult{}, err
	}
	res.Index = r.pos
	r.pos++
	return res, nil
}

// Step computes step i without moving the run. Fixed windows are evaluated
// directly; the longest-unique scan is replayed on a private state.
func (r *Run) Step(i int) (StepResult, error) {
	if i < 0 || i >= r.Total() {
		return StepResult{}, fmt.Errorf("%w: step %d of %d", ErrOutOfBounds, i, r.Total())
	}

	var (
		res StepResult
		err error
	)
	switch {
	case r.scanning():
		st := ResetScanState(r.seq, r.spec)
		for j := 0; j <= i; j++ {
			if res, err = AdvanceLongestUniqueSubstring(r.seq, st); err != nil {
				return StepResult{}, err
			}
		}
	case r.spec.Algorithm == PermutationMatch:
		res, err = AdvancePermutationMatch(r.seq, r.spec.Pattern, i)
	default:
		res, err = ComputeFixedWindow(r.seq, i, r.spec.WindowSize, r.spec.Algorithm)
	}
	if err != nil {
		return StepResult{}, err
	}
	res.Index = i
	return res, nil
}

// All runs a fresh copy of the configuration to completion.
func All(seq Sequence, spec WindowSpec) ([]StepResult, error) {
	r, err := NewRun(seq, spec)
	if err != nil {
		return nil, err
	}
	steps := make([]StepResult, 0, r.Total())
	for !r.Done() {
		res, err := r.Next()
		if err != nil {
			return steps, err
		}
		steps = append(steps, res)
	}
	return steps, nil
}
