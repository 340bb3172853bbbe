package badger

import (
	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/storage"
)

// NewMemoryRepositories creates an in-memory candidate repository and vector
// retriever for testing. Returns repo, retriever, backend, and error.
// Caller must close the repo, the retriever, and the backend when done.
func NewMemoryRepositories(embedder ai.Embedder) (storage.CandidateRepository, storage.Retriever, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	repo, err := NewCandidateRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	retriever, err := NewVectorRetriever(backend, embedder)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, nil, nil, err
	}

	return repo, retriever, backend, nil
}
