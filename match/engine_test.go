package match

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentscout/resumatch/ai/mock"
	"github.com/talentscout/resumatch/core"
)

// axisVector returns a unit vector along the given axis in a 6-dim space.
func axisVector(axis int) []float32 {
	v := make([]float32, 6)
	v[axis] = 1
	return v
}

// similarVector returns a unit vector whose cosine similarity to
// axisVector(axis) is exactly sim, using the next axis for the remainder.
func similarVector(axis int, sim float64) []float32 {
	v := make([]float32, 6)
	v[axis] = float32(sim)
	v[axis+1] = float32(math.Sqrt(1 - sim*sim))
	return v
}

func candidateWith(attrs ...string) *core.AttributeRecord {
	return &core.AttributeRecord{
		Identity:            core.Identity{Name: "Test Candidate"},
		TechnicalAttributes: attrs,
	}
}

func TestNewEngine(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewEngine(mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewEngine(nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("invalid semantic threshold", func(t *testing.T) {
		_, err := NewEngine(mock.NewMockEmbedder(), WithSemanticThreshold(1.5))
		assert.Equal(t, ErrInvalidThresholds, err)
	})

	t.Run("inverted relationship band", func(t *testing.T) {
		_, err := NewEngine(mock.NewMockEmbedder(), WithRelationshipBand(0.9, 0.6))
		assert.Equal(t, ErrInvalidThresholds, err)
	})
}

func TestScore_ExactTier(t *testing.T) {
	// No embeddings should ever be requested when everything matches exactly.
	embedder := mock.NewVectorMapEmbedder(map[string][]float32{})
	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("case-insensitive equality", func(t *testing.T) {
		breakdown, err := engine.Score(ctx, core.RequiredAttributes{"python"}, candidateWith("Python"))
		require.NoError(t, err)

		assert.Equal(t, 1, breakdown.ExactCount)
		assert.Equal(t, "Python", breakdown.Matches[0].MatchedAttribute)
		assert.Equal(t, core.TierExact, breakdown.Matches[0].Tier)
	})

	t.Run("containment when longer than three chars", func(t *testing.T) {
		breakdown, err := engine.Score(ctx, core.RequiredAttributes{"django"}, candidateWith("Django REST Framework"))
		require.NoError(t, err)

		assert.Equal(t, 1, breakdown.ExactCount)
	})

	t.Run("first candidate attribute wins", func(t *testing.T) {
		breakdown, err := engine.Score(ctx, core.RequiredAttributes{"java"}, candidateWith("Core Java", "Java EE"))
		require.NoError(t, err)

		assert.Equal(t, "Core Java", breakdown.Matches[0].MatchedAttribute)
	})

	t.Run("full score", func(t *testing.T) {
		breakdown, err := engine.Score(ctx, core.RequiredAttributes{"python", "react"}, candidateWith("python", "react"))
		require.NoError(t, err)

		assert.Equal(t, 100.0, breakdown.ExactPct)
		assert.Equal(t, 100.0, breakdown.BlendedPct)
		assert.Equal(t, 100.0, breakdown.OverallPct)
	})
}

func TestScore_JavaJavascriptCarveOut(t *testing.T) {
	ctx := context.Background()

	t.Run("java never matches javascript", func(t *testing.T) {
		// Orthogonal vectors so neither embedding tier fires either.
		embedder := mock.NewVectorMapEmbedder(map[string][]float32{
			"java":       axisVector(0),
			"javascript": axisVector(2),
		})
		engine, err := NewEngine(embedder)
		require.NoError(t, err)

		breakdown, err := engine.Score(ctx, core.RequiredAttributes{"java"}, candidateWith("javascript"))
		require.NoError(t, err)

		assert.Equal(t, core.TierMissing, breakdown.Matches[0].Tier)
		assert.Equal(t, 0.0, breakdown.OverallPct)
	})

	t.Run("java still matches java entries", func(t *testing.T) {
		engine, err := NewEngine(mock.NewVectorMapEmbedder(map[string][]float32{}))
		require.NoError(t, err)

		breakdown, err := engine.Score(ctx, core.RequiredAttributes{"java"}, candidateWith("java", "core java"))
		require.NoError(t, err)

		assert.Equal(t, core.TierExact, breakdown.Matches[0].Tier)
		assert.Equal(t, "java", breakdown.Matches[0].MatchedAttribute)
	})
}

func TestScore_RelationshipAndSemanticTiers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		sim      float64
		wantTier core.MatchTier
	}{
		{"below semantic threshold", 0.30, core.TierMissing},
		{"semantic below band", 0.55, core.TierSemantic},
		{"bottom of relationship band", 0.60, core.TierRelationship},
		{"inside relationship band", 0.75, core.TierRelationship},
		{"above band is semantic again", 0.90, core.TierSemantic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder := mock.NewVectorMapEmbedder(map[string][]float32{
				"react": axisVector(0),
				"html":  similarVector(0, tt.sim),
			})
			engine, err := NewEngine(embedder)
			require.NoError(t, err)

			breakdown, err := engine.Score(ctx, core.RequiredAttributes{"react"}, candidateWith("html"))
			require.NoError(t, err)

			require.Len(t, breakdown.Matches, 1)
			assert.Equal(t, tt.wantTier, breakdown.Matches[0].Tier)
			if tt.wantTier != core.TierMissing {
				assert.Equal(t, "html", breakdown.Matches[0].MatchedAttribute)
				assert.InDelta(t, tt.sim, breakdown.Matches[0].Similarity, 1e-6)
			}
		})
	}
}

func TestScore_HighestSimilarityWins(t *testing.T) {
	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
		"frontend": axisVector(0),
		"css":      similarVector(0, 0.65),
		"html":     similarVector(0, 0.80),
	})
	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	breakdown, err := engine.Score(context.Background(),
		core.RequiredAttributes{"frontend"}, candidateWith("css", "html"))
	require.NoError(t, err)

	assert.Equal(t, "html", breakdown.Matches[0].MatchedAttribute)
	assert.InDelta(t, 0.80, breakdown.Matches[0].Similarity, 1e-6)
}

func TestScore_TieBreakKeepsCandidateOrder(t *testing.T) {
	same := similarVector(0, 0.70)
	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
		"frontend": axisVector(0),
		"css":      same,
		"html":     same,
	})
	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	breakdown, err := engine.Score(context.Background(),
		core.RequiredAttributes{"frontend"}, candidateWith("css", "html"))
	require.NoError(t, err)

	assert.Equal(t, "css", breakdown.Matches[0].MatchedAttribute)
}

func TestScore_TiersPartitionRequiredSet(t *testing.T) {
	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
		"python":     axisVector(0),
		"react":      axisVector(2),
		"html":       similarVector(2, 0.70),
		"typescript": similarVector(2, 0.10),
		"kubernetes": axisVector(4),
	})
	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	required := core.RequiredAttributes{"python", "react", "kubernetes"}
	breakdown, err := engine.Score(context.Background(), required,
		candidateWith("python", "html", "typescript"))
	require.NoError(t, err)

	require.Len(t, breakdown.Matches, len(required))
	tierCounts := map[core.MatchTier]int{}
	for i, m := range breakdown.Matches {
		assert.Equal(t, required[i], m.Attribute)
		tierCounts[m.Tier]++
	}

	total := tierCounts[core.TierExact] + tierCounts[core.TierRelationship] +
		tierCounts[core.TierSemantic] + tierCounts[core.TierMissing]
	assert.Equal(t, len(required), total)
	assert.Equal(t, 1, breakdown.ExactCount)
	assert.Equal(t, 1, breakdown.RelationshipCount)
	assert.Equal(t, 1, len(required)-breakdown.MatchedCount())
}

func TestScore_EmptyRequiredSet(t *testing.T) {
	engine, err := NewEngine(mock.NewMockEmbedder())
	require.NoError(t, err)

	breakdown, err := engine.Score(context.Background(), core.RequiredAttributes{}, candidateWith("python"))
	require.NoError(t, err)

	assert.Empty(t, breakdown.Matches)
	assert.Equal(t, 0.0, breakdown.ExactPct)
	assert.Equal(t, 0.0, breakdown.BlendedPct)
	assert.Equal(t, 0.0, breakdown.OverallPct)
	assert.Equal(t, NoRequirementsExplanation, Explanation(breakdown))
}

func TestScore_EmptyCandidateAttributes(t *testing.T) {
	embedder := mock.NewVectorMapEmbedder(map[string][]float32{})
	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	breakdown, err := engine.Score(context.Background(), core.RequiredAttributes{"python"}, candidateWith())
	require.NoError(t, err)

	assert.Equal(t, core.TierMissing, breakdown.Matches[0].Tier)
	assert.Equal(t, 0.0, breakdown.OverallPct)
	// The embedder must not be consulted for an empty attribute list.
	assert.Equal(t, 0, embedder.CallCount())
}

func TestScore_ScoringFormula(t *testing.T) {
	// One exact, one relationship, one semantic, one missing out of four.
	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
		"python":     axisVector(5),
		"react":      axisVector(0),
		"html":       similarVector(0, 0.70),
		"docker":     axisVector(2),
		"containers": similarVector(2, 0.55),
		"rust":       axisVector(4),
	})
	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	required := core.RequiredAttributes{"python", "react", "docker", "rust"}
	breakdown, err := engine.Score(context.Background(), required,
		candidateWith("python", "html", "containers"))
	require.NoError(t, err)

	assert.Equal(t, 1, breakdown.ExactCount)
	assert.Equal(t, 1, breakdown.RelationshipCount)
	assert.Equal(t, 1, breakdown.SemanticCount)

	// exactPct = 100*1/4 = 25; blended = 100*(1 + 0.7 + 0.5)/4 = 55
	assert.InDelta(t, 25.0, breakdown.ExactPct, 1e-9)
	assert.InDelta(t, 55.0, breakdown.BlendedPct, 1e-9)
	assert.InDelta(t, 25.0*0.6+55.0*0.4, breakdown.OverallPct, 1e-9)
}

func TestScore_PercentagesAlwaysInRange(t *testing.T) {
	engine, err := NewEngine(mock.NewMockEmbedder())
	require.NoError(t, err)

	candidates := []*core.AttributeRecord{
		candidateWith(),
		candidateWith("python"),
		candidateWith("python", "django", "flask", "celery"),
	}
	requiredSets := []core.RequiredAttributes{
		{},
		{"python"},
		{"python", "django", "react", "kubernetes", "terraform"},
	}

	for _, candidate := range candidates {
		for _, required := range requiredSets {
			breakdown, err := engine.Score(context.Background(), required, candidate)
			require.NoError(t, err)

			for _, pct := range []float64{breakdown.ExactPct, breakdown.BlendedPct, breakdown.OverallPct} {
				assert.GreaterOrEqual(t, pct, 0.0)
				assert.LessOrEqual(t, pct, 100.0)
			}
		}
	}
}

func TestScore_ZeroOverallOnlyWhenAllMissing(t *testing.T) {
	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
		"python": axisVector(0),
		"cobol":  axisVector(2),
	})
	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	breakdown, err := engine.Score(context.Background(), core.RequiredAttributes{"python"}, candidateWith("cobol"))
	require.NoError(t, err)

	assert.Equal(t, 0.0, breakdown.OverallPct)
	for _, m := range breakdown.Matches {
		assert.Equal(t, core.TierMissing, m.Tier)
	}
}

func TestScore_DegradesWhenEmbedderUnavailable(t *testing.T) {
	ctx := context.Background()
	providerDown := errors.New("connection refused")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, providerDown
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, providerDown
	}

	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	// Exact-tier matches must survive a dead embedder.
	breakdown, err := engine.Score(ctx, core.RequiredAttributes{"python", "react"}, candidateWith("python", "html"))
	require.NoError(t, err)

	assert.Equal(t, core.TierExact, breakdown.Matches[0].Tier)
	assert.Equal(t, core.TierMissing, breakdown.Matches[1].Tier)
	assert.InDelta(t, 50.0, breakdown.ExactPct, 1e-9)
}

func TestScore_Deterministic(t *testing.T) {
	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
		"react": axisVector(0),
		"html":  similarVector(0, 0.70),
	})
	engine, err := NewEngine(embedder)
	require.NoError(t, err)

	first, err := engine.Score(context.Background(), core.RequiredAttributes{"react"}, candidateWith("html"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := engine.Score(context.Background(), core.RequiredAttributes{"react"}, candidateWith("html"))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		u, v []float32
		want float64
	}{
		{"identical unit vectors", []float32{1, 0}, []float32{1, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.u, tt.v), 1e-9)
		})
	}
}

func TestNormalizeVector(t *testing.T) {
	t.Run("normalizes to unit length", func(t *testing.T) {
		v := NormalizeVector([]float32{3, 4})
		assert.InDelta(t, 0.6, float64(v[0]), 1e-6)
		assert.InDelta(t, 0.8, float64(v[1]), 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := NormalizeVector([]float32{0, 0})
		assert.Equal(t, []float32{0, 0}, v)
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, NormalizeVector(nil))
	})
}
