package resumatch

import (
	"context"
	"log/slog"

	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/ai/openai"
	"github.com/talentscout/resumatch/corpus"
	"github.com/talentscout/resumatch/ingest"
	"github.com/talentscout/resumatch/search"
	"github.com/talentscout/resumatch/storage/badger"
)

// System wires the storage backend, candidate corpus, and AI provider into
// a single entry point. It is the facade the CLI and embedding applications
// build on.
type System struct {
	backend  *badger.Backend
	store    *corpus.Store
	provider ai.AIProvider
	logger   *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the AI provider configuration used when no explicit
// provider is supplied.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing the
// default OpenAI-compatible one. Used for tests and custom integrations.
func WithProvider(provider ai.AIProvider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the storage backend in memory, discarding all data on
// close.
func WithInMemory() SystemOption {
	return func(o *systemOptions) {
		o.inMemory = true
	}
}

// NewSystem opens the storage backend at filePath and wires up the corpus
// store and AI provider. Call Load afterwards to recover persisted
// artifacts before serving queries.
func NewSystem(filePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	repo, err := badger.NewCandidateRepository(backend)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	retriever, err := badger.NewVectorRetriever(backend, provider.Embedder())
	if err != nil {
		repo.Close()
		provider.Close()
		backend.Close()
		return nil, err
	}

	store, err := corpus.NewStore(repo, retriever)
	if err != nil {
		retriever.Close()
		repo.Close()
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &System{
		backend:  backend,
		store:    store,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Load recovers the persisted corpus artifacts and rebuilds any that are
// missing or stale. Safe to call on an empty database.
func (s *System) Load(ctx context.Context) error {
	return s.store.Load(ctx)
}

// Store returns the candidate corpus store.
func (s *System) Store() *corpus.Store {
	return s.store
}

// Provider returns the AI provider.
func (s *System) Provider() ai.AIProvider {
	return s.provider
}

// NewIngestPipeline creates an ingestion pipeline bound to this system's
// corpus and provider.
func (s *System) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(s.store, s.provider, opts...)
}

// NewSearcher creates a searcher bound to this system's corpus and
// provider.
func (s *System) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.store, s.provider, opts...)
}

// Close releases the provider, corpus, and backend in that order.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing corpus store", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
