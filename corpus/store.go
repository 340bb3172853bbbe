package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/talentscout/resumatch/core"
	"github.com/talentscout/resumatch/storage"
)

// Store is the candidate store. Safe for concurrent use: duplicate
// detection and insertion happen under one write lock, searches under a
// read lock.
type Store struct {
	mu        sync.RWMutex
	repo      storage.CandidateRepository
	retriever storage.Retriever
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a candidate store over the given repository and
// retriever.
func NewStore(repo storage.CandidateRepository, retriever storage.Retriever, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}

	s := &Store{
		repo:      repo,
		retriever: retriever,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Add inserts a candidate record unless its content fingerprint is already
// present. Returns core.ErrDuplicateRecord for duplicates; the store and
// the vector index are left untouched in that case.
//
// A failed vector indexing (embedding provider down) does not abort the
// insert: the record and fingerprint persist, and Reindex or the next Load
// rebuilds the missing index entry.
func (s *Store) Add(ctx context.Context, record *core.AttributeRecord) error {
	if err := core.ValidateAttributeRecord(record); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fp := core.ComputeFingerprint(record)

	has, err := s.repo.HasFingerprint(ctx, fp)
	if err != nil {
		return fmt.Errorf("fingerprint lookup: %w", err)
	}
	if has {
		return core.ErrDuplicateRecord
	}

	if _, err := s.repo.AddCandidates(ctx, record); err != nil {
		return fmt.Errorf("persist record: %w", err)
	}

	if err := s.repo.AddFingerprint(ctx, fp, record.Id); err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
		return fmt.Errorf("persist fingerprint: %w", err)
	}

	if err := s.retriever.Index(ctx, record.Id, record.SearchText()); err != nil {
		s.logger.Warn("vector indexing failed, record stored unindexed",
			"id", record.Id, "name", record.Identity.Name, "err", err)
	}

	return nil
}

// Search returns up to k stored records most relevant to the query text,
// ordered by relevance descending. An empty corpus yields an empty list.
func (s *Store) Search(ctx context.Context, queryText string, k int) ([]*core.AttributeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count, err := s.retriever.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	ids, err := s.retriever.Query(ctx, queryText, k)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	return s.repo.GetCandidates(ctx, ids...)
}

// Get retrieves a single record by ID.
func (s *Store) Get(ctx context.Context, id core.ID) (*core.AttributeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.GetCandidate(ctx, id)
}

// List returns all stored records.
func (s *Store) List(ctx context.Context) ([]*core.AttributeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.ListCandidates(ctx)
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.CountCandidates(ctx)
}

// FingerprintCount returns the number of recorded fingerprints. Equal to
// Count after any completed Add.
func (s *Store) FingerprintCount(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.CountFingerprints(ctx)
}

// Save flushes all three persisted artifacts to durable storage. Every
// Add already writes through to the backend, so this only forces a disk
// sync.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Sync(ctx)
}

// Load recovers store state after opening the backend. The three
// persisted artifacts recover independently: a missing or short
// fingerprint set is recomputed from the records, and a missing or short
// vector index is rebuilt by re-embedding search texts. Unreadable
// artifacts are logged and treated as absent.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.ListCandidates(ctx)
	if err != nil {
		s.logger.Warn("candidate records unreadable, starting from an empty corpus",
			"err", errors.Join(core.ErrCorruptState, err))
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	fpCount, err := s.repo.CountFingerprints(ctx)
	if err != nil {
		s.logger.Warn("fingerprint set unreadable, rebuilding",
			"err", errors.Join(core.ErrCorruptState, err))
		fpCount = 0
	}
	if fpCount < len(records) {
		s.logger.Info("rebuilding fingerprint set", "records", len(records), "fingerprints", fpCount)
		for _, record := range records {
			err := s.repo.AddFingerprint(ctx, core.ComputeFingerprint(record), record.Id)
			if err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("rebuild fingerprint set: %w", err)
			}
		}
	}

	vecCount, err := s.retriever.Count(ctx)
	if err != nil {
		s.logger.Warn("vector index unreadable, rebuilding",
			"err", errors.Join(core.ErrCorruptState, err))
		vecCount = 0
	}
	if vecCount < len(records) {
		s.logger.Info("rebuilding vector index", "records", len(records), "indexed", vecCount)
		s.reindexLocked(ctx, records)
	}

	return nil
}

// Reindex re-embeds and re-indexes every stored record's search text.
// Used after switching embedding models.
func (s *Store) Reindex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return err
	}
	s.reindexLocked(ctx, records)
	return nil
}

// reindexLocked indexes records best-effort; individual embedding failures
// are logged, never fatal. Caller holds the write lock.
func (s *Store) reindexLocked(ctx context.Context, records []*core.AttributeRecord) {
	indexed := 0
	for _, record := range records {
		if err := s.retriever.Index(ctx, record.Id, record.SearchText()); err != nil {
			s.logger.Warn("re-indexing record failed", "id", record.Id, "err", err)
			continue
		}
		indexed++
	}
	s.logger.Info("vector index rebuilt", "indexed", indexed, "total", len(records))
}

// Clear removes every record, fingerprint, and vector index entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Clear(ctx)
}

// Close releases the repository and retriever. The storage backend is
// closed by its owner.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.retriever.Close(), s.repo.Close())
}
