package ingest

import "errors"

var (
	// ErrStoreRequired indicates the pipeline was created without a candidate store.
	ErrStoreRequired = errors.New("candidate store is required")

	// ErrAIProviderRequired indicates the pipeline was created without an AI provider.
	ErrAIProviderRequired = errors.New("AI provider is required")

	// ErrUnsupportedFormat indicates a document format the parser cannot read.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
