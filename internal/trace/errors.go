package trace

import "errors"

// Domain errors for trace generation.
var (
	// ErrInvalidInput indicates an empty or otherwise unusable input sequence.
	ErrInvalidInput = errors.New("trace: invalid input sequence")

	// ErrUnknownAlgorithm indicates an unsupported algorithm selector.
	ErrUnknownAlgorithm = errors.New("trace: unknown algorithm")
)
