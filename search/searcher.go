package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/core"
	"github.com/talentscout/resumatch/corpus"
	"github.com/talentscout/resumatch/match"
)

const (
	// DefaultRetrievalK is the number of candidates pulled from the store
	// before scoring.
	DefaultRetrievalK = 10

	// DefaultTopN is the number of ranked candidates returned.
	DefaultTopN = 3

	// expansionFactor widens retrieval when query expansion is enabled.
	expansionFactor = 2
)

// Searcher ranks stored candidates against free-text hiring queries.
type Searcher struct {
	store      *corpus.Store
	extractor  ai.AttributeExtractor
	engine     *match.Engine
	pool       *ants.Pool
	retrievalK int
	topN       int
	expand     bool
	logger     *slog.Logger

	matchOpts []match.Option
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithRetrievalK sets how many candidates retrieval pulls before scoring.
// Default is DefaultRetrievalK.
func WithRetrievalK(k int) Option {
	return func(s *Searcher) error {
		if k > 0 {
			s.retrievalK = k
		}
		return nil
	}
}

// WithTopN sets how many ranked candidates a search returns.
// Default is DefaultTopN.
func WithTopN(n int) Option {
	return func(s *Searcher) error {
		if n > 0 {
			s.topN = n
		}
		return nil
	}
}

// WithExpansion enables query expansion: the extractor proposes related
// attributes that widen retrieval. Scoring still runs against the
// attributes extracted from the query itself.
func WithExpansion(enabled bool) Option {
	return func(s *Searcher) error {
		s.expand = enabled
		return nil
	}
}

// WithMatchOptions forwards options to the scoring engine.
func WithMatchOptions(opts ...match.Option) Option {
	return func(s *Searcher) error {
		s.matchOpts = append(s.matchOpts, opts...)
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the candidate store.
func NewSearcher(store *corpus.Store, provider ai.AIProvider, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		store:      store,
		extractor:  provider.AttributeExtractor(),
		pool:       pool,
		retrievalK: DefaultRetrievalK,
		topN:       DefaultTopN,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	engine, err := match.NewEngine(provider.Embedder(), s.matchOpts...)
	if err != nil {
		s.Release()
		return nil, err
	}
	s.engine = engine

	return s, nil
}

// Search ranks stored candidates against the query.
// Returns up to the configured top-N candidates, best match first.
func (s *Searcher) Search(ctx context.Context, query string) ([]*core.RankedCandidate, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor ranks candidates with stage callbacks for observability.
// The monitor receives callbacks sequentially; it need not be thread-safe.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) ([]*core.RankedCandidate, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	monitor.Start(query)

	// 1. Extract the required attribute set from the query.
	raw, err := s.extractor.ExtractQueryAttributes(ctx, query)
	if err != nil {
		s.logger.Error("query attribute extraction failed", "query", query, "err", err)
		return nil, fmt.Errorf("extract query attributes: %w", err)
	}

	required := core.NormalizeRequired(raw)
	monitor.AfterExtraction(required)

	if len(required) == 0 {
		s.logger.Info("no skill requirements extracted", "query", query)
		monitor.Finish(nil)
		return nil, nil
	}

	// 2. Optionally widen the retrieval vocabulary.
	retrievalAttrs := []string(required)
	k := s.retrievalK
	if s.expand {
		expanded, err := s.extractor.ExpandAttributes(ctx, required)
		if err != nil {
			s.logger.Warn("query expansion failed, retrieving with extracted attributes only", "err", err)
		} else if len(expanded) > 0 {
			retrievalAttrs = core.NormalizeRequired(expanded)
			k *= expansionFactor
		}
		monitor.AfterExpansion(retrievalAttrs)
	}

	// 3. Narrow the corpus.
	candidates, err := s.store.Search(ctx, strings.Join(retrievalAttrs, ", "), k)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}
	monitor.AfterRetrieval(candidates)

	if len(candidates) == 0 {
		monitor.Finish(nil)
		return nil, nil
	}

	// 4. Score candidates concurrently against R. Failures skip the
	// candidate, never the search.
	scored := make([]*core.RankedCandidate, len(candidates))
	var wg sync.WaitGroup

	for i, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		i, candidate := i, candidate
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()

			breakdown, err := s.engine.Score(ctx, required, candidate)
			if err != nil {
				s.logger.Warn("candidate scoring failed, skipping",
					"candidate", candidate.Identity.Name, "err", err)
				return
			}

			scored[i] = &core.RankedCandidate{
				Record:      candidate,
				Breakdown:   breakdown,
				Explanation: match.Explanation(breakdown),
			}
		})
		if submitErr != nil {
			wg.Done()
			s.logger.Warn("submitting scoring task failed, skipping candidate",
				"candidate", candidate.Identity.Name, "err", submitErr)
		}
	}
	wg.Wait()

	results := make([]*core.RankedCandidate, 0, len(scored))
	for _, rc := range scored {
		if rc == nil {
			continue
		}
		monitor.CandidateScored(rc)
		results = append(results, rc)
	}

	// 5. Stable sort on the unrounded score keeps retrieval order as the
	// tie-break.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Breakdown.OverallPct > results[j].Breakdown.OverallPct
	})

	if len(results) > s.topN {
		results = results[:s.topN]
	}

	monitor.Finish(results)
	return results, nil
}

// Release releases the worker pool.
// The searcher should not be used after calling Release.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
