package engine

import "errors"

var (
	// ErrInvalidInput indicates an unparseable element, empty input or bad parameter.
	ErrInvalidInput = errors.New("engine: invalid input")
	// ErrOutOfBounds indicates a window that does not fit inside the sequence.
	ErrOutOfBounds = errors.New("engine: window out of bounds")
	// ErrEmptyPattern indicates a permutation match without a pattern.
	ErrEmptyPattern = errors.New("engine: pattern must not be empty")
	// ErrUnsupportedAlgorithm indicates an unknown algorithm key or an
	// algorithm used with a window type it does not support.
	ErrUnsupportedAlgorithm = errors.New("engine: unsupported algorithm")
	// ErrScanComplete indicates the scan has consumed the whole sequence.
	ErrScanComplete = errors.New("engine: scan complete")
	// ErrStaleState indicates a ScanState reused after the configuration changed.
	ErrStaleState = errors.New("engine: scan state belongs to a different configuration")
)
