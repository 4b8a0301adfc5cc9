// Package engine computes the window states a sliding-window animation shows.
//
// What:
//
//   - Fixed windows: sum, max, min and average over any window start.
//     Every start is computed independently, so callers may step in any order.
//   - Longest substring without repeats: a two-pointer scan whose pointers
//     live in a caller-owned ScanState.
//   - Permutation match: whether a window's frequency profile equals the
//     pattern's, either per start (stateless) or as a sliding scan.
//
// A Run ties one Sequence and one WindowSpec to one ScanState and is what
// presentation layers step through.
//
// Errors:
//
//   - ErrInvalidInput: malformed sequence or spec parameters.
//   - ErrOutOfBounds: window start/size outside the sequence.
//   - ErrEmptyPattern: permutation match without a pattern.
//   - ErrUnsupportedAlgorithm: unknown algorithm or window type combination.
//   - ErrScanComplete: a scan has no further steps.
//   - ErrStaleState: a ScanState used with a configuration it was not created for.
//
// Nothing in this package holds process-wide state. A ScanState or Run must
// not be shared between goroutines without external locking.
package engine
