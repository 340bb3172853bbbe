package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentscout/resumatch/ai/mock"
	"github.com/talentscout/resumatch/core"
	"github.com/talentscout/resumatch/corpus"
	"github.com/talentscout/resumatch/storage/badger"
)

type searchFixture struct {
	searcher *Searcher
	store    *corpus.Store
	provider *mock.MockProvider
}

func newSearchFixture(t *testing.T, provider *mock.MockProvider, opts ...Option) *searchFixture {
	t.Helper()

	repo, retriever, backend, err := badger.NewMemoryRepositories(provider.GetMockEmbedder())
	require.NoError(t, err)

	store, err := corpus.NewStore(repo, retriever)
	require.NoError(t, err)

	searcher, err := NewSearcher(store, provider, append([]Option{WithPoolSize(2)}, opts...)...)
	require.NoError(t, err)

	t.Cleanup(func() {
		searcher.Release()
		store.Close()
		backend.Close()
	})

	return &searchFixture{searcher: searcher, store: store, provider: provider}
}

func candidate(name string, attrs ...string) *core.AttributeRecord {
	return &core.AttributeRecord{
		Identity:            core.Identity{Name: name},
		TechnicalAttributes: attrs,
	}
}

// unitAt returns a 4-dim unit vector along the given axis.
func unitAt(axis int) []float32 {
	v := make([]float32, 4)
	v[axis] = 1
	return v
}

func TestSearch_RanksAndExplains(t *testing.T) {
	// Two candidates against "python, react":
	//   Alice has python (exact) and django; react finds nothing ⇒ 50%.
	//   Bob has java and html; html relates to react at 0.65 ⇒ 14%.
	alice := candidate("Alice", "python", "django")
	bob := candidate("Bob", "java", "html")

	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
		"python": unitAt(0),
		"django": unitAt(0),
		"react":  unitAt(1),
		"java":   unitAt(2),
		"html":   {0, 0.65, 0, 0.7599},

		// Retrieval texts: Alice closer to the query than Bob.
		"python, react":      unitAt(0),
		alice.SearchText():   unitAt(0),
		bob.SearchText():     {0.5, 0, 0, 0.866},
	})

	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockExtractor())
	f := newSearchFixture(t, provider)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, alice))
	require.NoError(t, f.store.Add(ctx, bob))

	results, err := f.searcher.Search(ctx, "python, react")
	require.NoError(t, err)
	require.Len(t, results, 2)

	first, second := results[0], results[1]

	assert.Equal(t, "Alice", first.Record.Identity.Name)
	assert.InDelta(t, 50.0, first.Breakdown.OverallPct, 1e-9)
	assert.Equal(t, 1, first.Breakdown.ExactCount)
	assert.Contains(t, first.Explanation, "Exact: python")
	assert.Contains(t, first.Explanation, "Missing: react")

	assert.Equal(t, "Bob", second.Record.Identity.Name)
	assert.InDelta(t, 14.0, second.Breakdown.OverallPct, 1e-9)
	assert.Equal(t, 1, second.Breakdown.RelationshipCount)
	assert.Contains(t, second.Explanation, "Related: react→html (65.0%)")
}

func TestSearch_Deterministic(t *testing.T) {
	alice := candidate("Alice", "python", "django")
	bob := candidate("Bob", "java", "html")

	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
		"python": unitAt(0),
		"django": unitAt(0),
		"react":  unitAt(1),
		"java":   unitAt(2),
		"html":   {0, 0.65, 0, 0.7599},

		"python, react":    unitAt(0),
		alice.SearchText(): unitAt(0),
		bob.SearchText():   {0.5, 0, 0, 0.866},
	})

	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockExtractor())
	f := newSearchFixture(t, provider)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, alice))
	require.NoError(t, f.store.Add(ctx, bob))

	first, err := f.searcher.Search(ctx, "python, react")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := f.searcher.Search(ctx, "python, react")
		require.NoError(t, err)

		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Record.Identity.Name, again[j].Record.Identity.Name)
			assert.Equal(t, first[j].Breakdown.OverallPct, again[j].Breakdown.OverallPct)
			assert.Equal(t, first[j].Explanation, again[j].Explanation)
		}
	}
}

func TestSearch_TopNCap(t *testing.T) {
	provider := mock.NewMockProvider()
	f := newSearchFixture(t, provider, WithTopN(2))
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, candidate("Alice", "python")))
	require.NoError(t, f.store.Add(ctx, candidate("Bob", "python", "go")))
	require.NoError(t, f.store.Add(ctx, candidate("Carol", "rust")))

	results, err := f.searcher.Search(ctx, "python")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 2)
}

func TestSearch_EmptyQuery(t *testing.T) {
	f := newSearchFixture(t, mock.NewMockProvider())

	_, err := f.searcher.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearch_NoRequirementsExtracted(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockExtractor().ExtractQueryAttributesFunc = func(ctx context.Context, query string) ([]string, error) {
		return nil, nil
	}

	f := newSearchFixture(t, provider)
	ctx := context.Background()
	require.NoError(t, f.store.Add(ctx, candidate("Alice", "python")))

	results, err := f.searcher.Search(ctx, "someone nice to work with")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_EmptyCorpus(t *testing.T) {
	f := newSearchFixture(t, mock.NewMockProvider())

	results, err := f.searcher.Search(context.Background(), "python")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ExtractionFailure(t *testing.T) {
	provider := mock.NewMockProvider()
	boom := errors.New("model unavailable")
	provider.GetMockExtractor().ExtractQueryAttributesFunc = func(ctx context.Context, query string) ([]string, error) {
		return nil, boom
	}

	f := newSearchFixture(t, provider)

	_, err := f.searcher.Search(context.Background(), "python")
	assert.ErrorIs(t, err, boom)
}

func TestSearch_ExpansionWidensRetrievalOnly(t *testing.T) {
	provider := mock.NewMockProvider()
	var expansionInput []string
	provider.GetMockExtractor().ExpandAttributesFunc = func(ctx context.Context, attrs []string) ([]string, error) {
		expansionInput = attrs
		return append(append([]string{}, attrs...), "javascript", "typescript"), nil
	}

	f := newSearchFixture(t, provider, WithExpansion(true))
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, candidate("Alice", "react")))

	monitor := &recordingMonitor{}
	results, err := f.searcher.SearchWithMonitor(ctx, "react", monitor)
	require.NoError(t, err)

	assert.Equal(t, []string{"react"}, expansionInput)
	assert.Equal(t, []string{"react", "javascript", "typescript"}, monitor.expanded)

	// Scoring ran against the extracted attributes only.
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Breakdown.RequiredCount)
	assert.Equal(t, core.RequiredAttributes{"react"}, monitor.required)
}

func TestSearch_ExpansionFailureFallsBack(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockExtractor().ExpandAttributesFunc = func(ctx context.Context, attrs []string) ([]string, error) {
		return nil, errors.New("model unavailable")
	}

	f := newSearchFixture(t, provider, WithExpansion(true))
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, candidate("Alice", "python")))

	results, err := f.searcher.Search(ctx, "python")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_MonitorSequence(t *testing.T) {
	provider := mock.NewMockProvider()
	f := newSearchFixture(t, provider)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, candidate("Alice", "python")))

	monitor := &recordingMonitor{}
	results, err := f.searcher.SearchWithMonitor(ctx, "python", monitor)
	require.NoError(t, err)

	assert.Equal(t, "python", monitor.query)
	assert.Equal(t, core.RequiredAttributes{"python"}, monitor.required)
	assert.Len(t, monitor.retrieved, 1)
	assert.Equal(t, len(results), monitor.scoredCalls)
	assert.True(t, monitor.finished)
}

func TestNewSearcherValidation(t *testing.T) {
	provider := mock.NewMockProvider()
	repo, retriever, backend, err := badger.NewMemoryRepositories(provider.GetMockEmbedder())
	require.NoError(t, err)
	defer backend.Close()

	store, err := corpus.NewStore(repo, retriever)
	require.NoError(t, err)

	_, err = NewSearcher(nil, provider)
	assert.Equal(t, ErrStoreRequired, err)

	_, err = NewSearcher(store, nil)
	assert.Equal(t, ErrAIProviderRequired, err)
}

// recordingMonitor captures stage callbacks for assertions.
type recordingMonitor struct {
	query       string
	required    core.RequiredAttributes
	expanded    []string
	retrieved   []*core.AttributeRecord
	scoredCalls int
	finished    bool
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(query string)                            { m.query = query }
func (m *recordingMonitor) AfterExtraction(r core.RequiredAttributes)     { m.required = r }
func (m *recordingMonitor) AfterExpansion(expanded []string)              { m.expanded = expanded }
func (m *recordingMonitor) AfterRetrieval(c []*core.AttributeRecord)      { m.retrieved = c }
func (m *recordingMonitor) CandidateScored(_ *core.RankedCandidate)       { m.scoredCalls++ }
func (m *recordingMonitor) Finish(_ []*core.RankedCandidate)              { m.finished = true }
