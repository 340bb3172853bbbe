package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/talentscout/resumatch/core"
	"github.com/talentscout/resumatch/storage"
)

// CandidateRepository implements storage.CandidateRepository for BadgerDB.
type CandidateRepository struct {
	backend *Backend
}

var _ storage.CandidateRepository = (*CandidateRepository)(nil)

// NewCandidateRepository creates a new CandidateRepository.
func NewCandidateRepository(backend *Backend) (*CandidateRepository, error) {
	return &CandidateRepository{backend: backend}, nil
}

// Close releases repository resources. The backend is closed separately.
func (r *CandidateRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CandidateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Sync flushes pending writes to disk.
func (r *CandidateRepository) Sync(_ context.Context) error {
	return r.backend.Sync()
}

// AddCandidates adds one or more candidate records to storage.
// Records with ID=0 get a content-based ID derived from their fingerprint,
// so re-ingesting identical content converges on the same key.
func (r *CandidateRepository) AddCandidates(ctx context.Context, records ...*core.AttributeRecord) ([]*core.AttributeRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Id == 0 {
				record.Id = core.IDFromContent(string(core.ComputeFingerprint(record)))
			}

			record.InsertedAt = time.Now().UTC()
			record.UpdatedAt = record.InsertedAt

			key := makeCandidateKey(record.Id)
			if err := tx.Set(key, storage.MarshalAttributeRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// UpdateCandidates updates existing candidate records.
func (r *CandidateRepository) UpdateCandidates(ctx context.Context, records ...*core.AttributeRecord) ([]*core.AttributeRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeCandidateKey(record.Id)

			old, err := r.readCandidate(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			record.InsertedAt = old.InsertedAt
			record.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalAttributeRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// DeleteCandidates removes candidate records by their IDs.
func (r *CandidateRepository) DeleteCandidates(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCandidateKey(id)

			record, err := r.readCandidate(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetCandidate retrieves a single candidate record by ID.
func (r *CandidateRepository) GetCandidate(ctx context.Context, id core.ID) (*core.AttributeRecord, error) {
	var result *core.AttributeRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readCandidate(tx, makeCandidateKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetCandidates retrieves multiple candidate records by their IDs.
func (r *CandidateRepository) GetCandidates(ctx context.Context, ids ...core.ID) ([]*core.AttributeRecord, error) {
	var result []*core.AttributeRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := r.readCandidate(tx, makeCandidateKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListCandidates retrieves all stored candidate records.
func (r *CandidateRepository) ListCandidates(ctx context.Context) ([]*core.AttributeRecord, error) {
	var results []*core.AttributeRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(candidateRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.AttributeRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalAttributeRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// CountCandidates returns the number of stored candidate records.
func (r *CandidateRepository) CountCandidates(ctx context.Context) (int, error) {
	return r.countPrefix(candidateRecordPrefix + ":")
}

// AddFingerprint records a content fingerprint.
func (r *CandidateRepository) AddFingerprint(ctx context.Context, fp core.Fingerprint, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFingerprintKey(fp)

		_, err := tx.Get(key)
		if err == nil {
			return storage.ErrDuplicateKey
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		if err := tx.Set(key, storage.MarshalID(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// HasFingerprint reports whether a content fingerprint is recorded.
func (r *CandidateRepository) HasFingerprint(ctx context.Context, fp core.Fingerprint) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeFingerprintKey(fp))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// DeleteFingerprint removes a content fingerprint.
func (r *CandidateRepository) DeleteFingerprint(ctx context.Context, fp core.Fingerprint) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeFingerprintKey(fp)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListFingerprints retrieves all recorded fingerprints with the record IDs
// they map to.
func (r *CandidateRepository) ListFingerprints(ctx context.Context) (map[core.Fingerprint]core.ID, error) {
	results := make(map[core.Fingerprint]core.ID)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(fingerprintPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			fp := fingerprintFromKey(item.KeyCopy(nil))

			var id core.ID
			if err := item.Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			results[fp] = id
		}
		return nil
	}, false)
	return results, err
}

// CountFingerprints returns the number of recorded fingerprints.
func (r *CandidateRepository) CountFingerprints(ctx context.Context) (int, error) {
	return r.countPrefix(fingerprintPrefix + ":")
}

// Clear removes all candidate records, fingerprints, and vector index
// entries in one operation.
func (r *CandidateRepository) Clear(ctx context.Context) error {
	return r.backend.DropPrefixes(artifactPrefixes()...)
}

// readCandidate reads a candidate record by key within a transaction.
// Returns nil without error if the key doesn't exist.
func (r *CandidateRepository) readCandidate(tx *badger.Txn, key []byte) (*core.AttributeRecord, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record *core.AttributeRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalAttributeRecord(val)
		return err
	})
	return record, err
}

// countPrefix counts keys under a prefix without loading values.
func (r *CandidateRepository) countPrefix(prefix string) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}
