package badger

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/core"
	"github.com/talentscout/resumatch/storage"
)

// ErrEmbedderRequired indicates a retriever was constructed without an embedder.
var ErrEmbedderRequired = errors.New("embedder is required")

// VectorRetriever implements storage.Retriever over the vector index
// artifact. Each record's search text is embedded once at Index time;
// queries run a brute-force cosine scan over the stored vectors. Corpus
// sizes here are thousands of records, not millions, so a scan beats
// maintaining an ANN structure.
type VectorRetriever struct {
	backend  *Backend
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ storage.Retriever = (*VectorRetriever)(nil)

// NewVectorRetriever creates a retriever backed by the given backend and
// embedder.
func NewVectorRetriever(backend *Backend, embedder ai.Embedder) (*VectorRetriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return &VectorRetriever{
		backend:  backend,
		embedder: embedder,
		logger:   slog.Default(),
	}, nil
}

// Close releases retriever resources. The backend is closed separately.
func (r *VectorRetriever) Close() error {
	return nil
}

// Index adds or replaces the vector index entry for a record.
func (r *VectorRetriever) Index(ctx context.Context, id core.ID, searchText string) error {
	vector, err := r.embedder.EmbedText(ctx, searchText)
	if err != nil {
		return err
	}

	entry := &storage.VectorEntry{Text: searchText, Vector: vector}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(id), storage.MarshalVectorEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Remove deletes the vector index entry for a record.
func (r *VectorRetriever) Remove(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeVectorKey(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

type scoredID struct {
	id    core.ID
	score float64
}

// Query returns the IDs of up to k indexed records most similar to the
// query text, ordered by similarity descending.
func (r *VectorRetriever) Query(ctx context.Context, text string, k int) ([]core.ID, error) {
	if k <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	queryVector, err := r.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	var scored []scoredID
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vectorIndexPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			id, err := idFromVectorKey(item.KeyCopy(nil))
			if err != nil {
				r.logger.Warn("skipping malformed vector index key", "key", string(item.Key()), "err", err)
				continue
			}

			var entry *storage.VectorEntry
			if err := item.Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalVectorEntry(val)
				return err
			}); err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}

			scored = append(scored, scoredID{
				id:    id,
				score: cosineSimilarity(queryVector, entry.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(scored, func(a, b scoredID) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return 0
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	ids := make([]core.ID, len(scored))
	for i, s := range scored {
		ids[i] = s.id
	}
	return ids, nil
}

// Count returns the number of indexed records.
func (r *VectorRetriever) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(vectorIndexPrefix + ":")
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

// cosineSimilarity computes full cosine similarity; stored vectors are not
// guaranteed to be normalized.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
