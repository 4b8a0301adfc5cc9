package engine

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ScanState is the accumulator carried between steps of a scanning
// algorithm. It belongs to exactly one run; create a new one with
// ResetScanState whenever the sequence, algorithm or parameters change.
//
// For both scans Right is the index of the next element to consume.
// Longest-unique uses Left, LastSeen and the Best* fields; permutation
// matching uses Left, PatternFreq, WindowFreq and Matches.
type ScanState struct {
	Algorithm Algorithm

	Left  int
	Right int

	LastSeen   map[int]int
	BestLength int
	BestStart  int
	BestEnd    int

	PatternFreq map[int]int
	WindowFreq  map[int]int
	// Matches counts pattern elements whose window count equals their
	// pattern count.
	Matches int

	fingerprint uint64
	// the sequences the state was bound to; matching these skips rehashing
	seq, pattern Sequence
}

// ResetScanState returns a fresh state for running spec over seq.
func ResetScanState(seq Sequence, spec WindowSpec) *ScanState {
	var pattern Sequence
	if spec.Algorithm == PermutationMatch {
		pattern = spec.Pattern
	}
	st := &ScanState{
		Algorithm:   spec.Algorithm,
		fingerprint: fingerprint(spec.Algorithm, seq, pattern),
		seq:         seq,
		pattern:     pattern,
	}
	switch spec.Algorithm {
	case LongestUnique:
		st.LastSeen = make(map[int]int)
		st.BestEnd = -1
	case PermutationMatch:
		st.PatternFreq = frequencies(spec.Pattern.values)
		st.WindowFreq = make(map[int]int)
	}
	return st
}

// BestSpan returns the best window found so far, if any.
func (st *ScanState) BestSpan() (Span, bool) {
	if st.BestLength == 0 {
		return Span{}, false
	}
	return Span{Start: st.BestStart, End: st.BestEnd}, true
}

func (st *ScanState) check(alg Algorithm, seq, pattern Sequence) error {
	if st == nil {
		return fmt.Errorf("%w: nil scan state", ErrInvalidInput)
	}
	if st.Algorithm != alg {
		return ErrStaleState
	}
	if seq.sameAs(st.seq) && pattern.sameAs(st.pattern) {
		return nil
	}
	if st.fingerprint != fingerprint(alg, seq, pattern) {
		return ErrStaleState
	}
	return nil
}

// fingerprint identifies the configuration a ScanState was created for.
func fingerprint(alg Algorithm, seq, pattern Sequence) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(alg))
	buf := make([]byte, 0, 8*(seq.Len()+pattern.Len()+4))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(seq.Mode()))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(seq.Len()))
	for _, v := range seq.values {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(pattern.Len()))
	for _, v := range pattern.values {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}
