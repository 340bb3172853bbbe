package search

import "errors"

var (
	// ErrStoreRequired is returned when a candidate store is not provided.
	ErrStoreRequired = errors.New("candidate store required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuery is returned for a blank search query.
	ErrEmptyQuery = errors.New("empty query")
)
