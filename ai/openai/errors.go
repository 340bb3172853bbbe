package openai

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a retry call with a non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrEmptyResponse indicates the model returned no choices.
	ErrEmptyResponse = errors.New("model returned no choices")
)
