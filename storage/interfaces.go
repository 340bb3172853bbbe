package storage

import (
	"context"

	"github.com/talentscout/resumatch/core"
)

// Repository provides common storage operations shared across all
// repositories. Implementations must be thread-safe and support concurrent
// access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Sync flushes pending writes to durable storage.
	Sync(ctx context.Context) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CandidateRepository provides operations for managing candidate attribute
// records and the fingerprint set that guards against duplicate ingestion.
type CandidateRepository interface {
	Repository

	// AddCandidates adds one or more candidate records to storage.
	// Records with ID=0 are assigned content-based IDs from their
	// fingerprint. Sets InsertedAt and UpdatedAt timestamps.
	// Returns the records with IDs and timestamps populated.
	AddCandidates(ctx context.Context, records ...*core.AttributeRecord) ([]*core.AttributeRecord, error)

	// UpdateCandidates updates existing candidate records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateCandidates(ctx context.Context, records ...*core.AttributeRecord) ([]*core.AttributeRecord, error)

	// DeleteCandidates removes candidate records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteCandidates(ctx context.Context, ids ...core.ID) error

	// GetCandidate retrieves a single candidate record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetCandidate(ctx context.Context, id core.ID) (*core.AttributeRecord, error)

	// GetCandidates retrieves multiple candidate records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetCandidates(ctx context.Context, ids ...core.ID) ([]*core.AttributeRecord, error)

	// ListCandidates retrieves all stored candidate records.
	ListCandidates(ctx context.Context) ([]*core.AttributeRecord, error)

	// CountCandidates returns the number of stored candidate records.
	CountCandidates(ctx context.Context) (int, error)

	// AddFingerprint records a content fingerprint, mapping it to the
	// record that produced it. Returns ErrDuplicateKey if the fingerprint
	// is already present.
	AddFingerprint(ctx context.Context, fp core.Fingerprint, id core.ID) error

	// HasFingerprint reports whether a content fingerprint is recorded.
	HasFingerprint(ctx context.Context, fp core.Fingerprint) (bool, error)

	// DeleteFingerprint removes a content fingerprint.
	// Missing fingerprints are not an error.
	DeleteFingerprint(ctx context.Context, fp core.Fingerprint) error

	// ListFingerprints retrieves all recorded fingerprints with the record
	// IDs they map to.
	ListFingerprints(ctx context.Context) (map[core.Fingerprint]core.ID, error)

	// CountFingerprints returns the number of recorded fingerprints.
	CountFingerprints(ctx context.Context) (int, error)

	// Clear removes all candidate records, fingerprints, and vector index
	// entries in one operation.
	Clear(ctx context.Context) error
}

// Retriever narrows a corpus to the records most relevant to a query text.
// Implementations index each record's search text and answer queries with
// record IDs ordered by relevance (highest first).
type Retriever interface {
	// Index adds or replaces the vector index entry for a record.
	Index(ctx context.Context, id core.ID, searchText string) error

	// Remove deletes the vector index entry for a record.
	// Missing entries are not an error.
	Remove(ctx context.Context, id core.ID) error

	// Query returns the IDs of up to k indexed records most similar to the
	// query text, ordered by similarity descending.
	Query(ctx context.Context, text string, k int) ([]core.ID, error)

	// Count returns the number of indexed records.
	Count(ctx context.Context) (int, error)

	// Close releases retriever resources.
	Close() error
}
