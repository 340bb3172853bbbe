package core

import "errors"

// Domain errors
var (
	// ErrInvalidRecord indicates an AttributeRecord failed validation.
	ErrInvalidRecord = errors.New("invalid attribute record")

	// ErrDuplicateRecord indicates a record whose fingerprint is already
	// present in the store. Non-fatal; reported to the caller of Add.
	ErrDuplicateRecord = errors.New("duplicate record")

	// ErrProviderUnavailable indicates the embedding or extraction
	// collaborator could not be reached. Callers degrade rather than abort.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedRecord indicates extraction produced an unusable record.
	// Such records are stored with placeholder fields, not dropped.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrCorruptState indicates a persisted artifact could not be read.
	// The artifact is treated as absent and rebuilt from what did load.
	ErrCorruptState = errors.New("corrupt persisted state")
)
