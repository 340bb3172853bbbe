package match

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidThresholds is returned when configured thresholds are
	// outside [0, 1] or the relationship band is inverted.
	ErrInvalidThresholds = errors.New("invalid similarity thresholds")
)
