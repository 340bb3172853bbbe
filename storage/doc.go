// Package storage provides the storage abstraction layer for resumatch.
//
// This package defines repository interfaces that decouple storage
// implementation from candidate matching logic. It allows different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the interfaces defined
// here, so consumers never couple to BadgerDB specifics:
//
//	repo, err := badger.NewCandidateRepository(backend)  // storage.CandidateRepository
//
// Internal constructors may return concrete types since they are only used
// within the implementation package.
//
// # Persisted Artifacts
//
// A corpus persists as three artifacts, each under its own key prefix:
// candidate records, the fingerprint set used for duplicate detection, and
// the vector index used for retrieval. The artifacts recover independently;
// a missing fingerprint set or vector index is rebuilt from the records.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. All methods accept context.Context for
// cancellation and timeout support.
package storage
