package match

import (
	"context"
	"log/slog"
	"strings"

	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/core"
)

// Default thresholds. These were tuned empirically; treat them as
// configuration, not law.
const (
	// DefaultSemanticThreshold is the minimum cosine similarity accepted as
	// a semantic ("same concept") match.
	DefaultSemanticThreshold = 0.50

	// DefaultRelationshipLow and DefaultRelationshipHigh bound the
	// relationship band: similarities inside [low, high) are read as
	// "commonly co-occurring" rather than "same concept".
	DefaultRelationshipLow  = 0.60
	DefaultRelationshipHigh = 0.85
)

// Scoring weights. Stable for a given engine version: changing them
// silently alters published match percentages.
const (
	relationshipWeight = 0.7
	semanticWeight     = 0.5
	exactShare         = 0.6
	blendedShare       = 0.4
)

// containmentMinLength is the shortest required attribute eligible for the
// substring rule in the exact tier. Shorter tokens produce too many false
// containments ("go" in "django").
const containmentMinLength = 3

// Engine scores a candidate's attribute list against a required attribute
// set. Deterministic given the same Embedder outputs; safe for concurrent use.
type Engine struct {
	embedder          ai.Embedder
	semanticThreshold float64
	relationshipLow   float64
	relationshipHigh  float64
	logger            *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithSemanticThreshold sets the minimum similarity for a semantic match.
// Default is DefaultSemanticThreshold.
func WithSemanticThreshold(threshold float64) Option {
	return func(e *Engine) error {
		if threshold < 0 || threshold > 1 {
			return ErrInvalidThresholds
		}
		e.semanticThreshold = threshold
		return nil
	}
}

// WithRelationshipBand sets the [low, high) similarity band for
// relationship matches. Defaults are DefaultRelationshipLow and
// DefaultRelationshipHigh.
func WithRelationshipBand(low, high float64) Option {
	return func(e *Engine) error {
		if low < 0 || high > 1 || low >= high {
			return ErrInvalidThresholds
		}
		e.relationshipLow = low
		e.relationshipHigh = high
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a new matching engine.
func NewEngine(embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		embedder:          embedder,
		semanticThreshold: DefaultSemanticThreshold,
		relationshipLow:   DefaultRelationshipLow,
		relationshipHigh:  DefaultRelationshipHigh,
		logger:            slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Score produces one MatchResult per required attribute and the aggregate
// breakdown for the candidate. The four tiers partition the required set.
//
// Embedding failures never abort scoring: an attribute whose similarity
// lookup failed degrades to the exact tier's verdict (Missing here, since
// the exact tier already passed on it).
func (e *Engine) Score(ctx context.Context, required core.RequiredAttributes, candidate *core.AttributeRecord) (*core.ScoreBreakdown, error) {
	candidateAttrs := candidate.TechnicalAttributes

	results := make([]core.MatchResult, len(required))
	unmatched := make([]int, 0, len(required))

	// Tier 1: exact matches claim attributes before any embedding happens.
	for i, req := range required {
		if matched, ok := findExactMatch(req, candidateAttrs); ok {
			results[i] = core.MatchResult{
				Attribute:        req,
				MatchedAttribute: matched,
				Tier:             core.TierExact,
			}
			continue
		}
		unmatched = append(unmatched, i)
	}

	// Tiers 2 and 3 need embeddings for the candidate attributes.
	var candidateVectors [][]float32
	if len(unmatched) > 0 && len(candidateAttrs) > 0 {
		vectors, err := e.embedder.EmbedTexts(ctx, candidateAttrs)
		if err != nil {
			e.logger.Warn("candidate attribute embedding failed, degrading to exact-tier-only scoring",
				"candidate", candidate.Identity.Name, "err", err)
		} else {
			candidateVectors = vectors
		}
	}

	for _, i := range unmatched {
		req := required[i]
		results[i] = core.MatchResult{Attribute: req, Tier: core.TierMissing}

		if candidateVectors == nil {
			continue
		}

		reqVector, err := e.embedder.EmbedText(ctx, req)
		if err != nil {
			e.logger.Warn("required attribute embedding failed, treating as missing",
				"attribute", req, "err", err)
			continue
		}

		best, sim := bestSimilarity(reqVector, candidateAttrs, candidateVectors)
		if best == "" {
			continue
		}

		// The relationship band is inspected first; the semantic threshold
		// only applies to scores that fell outside the band.
		switch {
		case sim >= e.relationshipLow && sim < e.relationshipHigh:
			results[i] = core.MatchResult{
				Attribute:        req,
				MatchedAttribute: best,
				Similarity:       sim,
				Tier:             core.TierRelationship,
			}
		case sim >= e.semanticThreshold:
			results[i] = core.MatchResult{
				Attribute:        req,
				MatchedAttribute: best,
				Similarity:       sim,
				Tier:             core.TierSemantic,
			}
		}
	}

	return buildBreakdown(results, len(required), len(candidateAttrs)), nil
}

// findExactMatch scans the candidate attributes in their original order and
// returns the first exact or containment match. The scan stops at the first
// hit so a reordered candidate list can change which attribute is reported,
// but never whether the tier matches.
func findExactMatch(req string, candidateAttrs []string) (string, bool) {
	for _, cand := range candidateAttrs {
		candLower := strings.ToLower(strings.TrimSpace(cand))

		if req == candLower {
			return cand, true
		}

		// Containment: the required attribute appears inside a candidate
		// attribute ("django" in "django rest framework"). Never the other
		// way around, so a specialized requirement can't be satisfied by a
		// generic candidate entry.
		if len(req) > containmentMinLength && strings.Contains(candLower, req) {
			// Known false positive this rule would otherwise produce.
			if req == "java" && candLower == "javascript" {
				continue
			}
			return cand, true
		}
	}
	return "", false
}

// bestSimilarity returns the candidate attribute with the highest cosine
// similarity to the required attribute's vector. Ties keep the first
// attribute encountered at the maximum, so iteration order of the candidate
// list is the stable tie-break.
func bestSimilarity(reqVector []float32, candidateAttrs []string, candidateVectors [][]float32) (string, float64) {
	best := ""
	bestSim := -1.0
	for i, cand := range candidateAttrs {
		if i >= len(candidateVectors) {
			break
		}
		sim := CosineSimilarity(reqVector, candidateVectors[i])
		if sim > bestSim {
			bestSim = sim
			best = cand
		}
	}
	if best == "" {
		return "", 0
	}
	return best, bestSim
}

// buildBreakdown folds per-attribute results into the published percentages:
//
//	exactPct   = 100 * exact / required
//	blendedPct = min(100, 100 * (exact + 0.7*relationship + 0.5*semantic) / required)
//	overallPct = 0.6*exactPct + 0.4*blendedPct
//
// All percentages are clamped to [0, 100] and kept unrounded; display
// rounding happens in Explanation.
func buildBreakdown(results []core.MatchResult, requiredCount, candidateCount int) *core.ScoreBreakdown {
	breakdown := &core.ScoreBreakdown{
		RequiredCount:  requiredCount,
		CandidateCount: candidateCount,
		Matches:        results,
	}

	for _, r := range results {
		switch r.Tier {
		case core.TierExact:
			breakdown.ExactCount++
		case core.TierRelationship:
			breakdown.RelationshipCount++
		case core.TierSemantic:
			breakdown.SemanticCount++
		}
	}

	if requiredCount == 0 {
		return breakdown
	}

	n := float64(requiredCount)
	breakdown.ExactPct = clampPct(100 * float64(breakdown.ExactCount) / n)

	weighted := float64(breakdown.ExactCount) +
		relationshipWeight*float64(breakdown.RelationshipCount) +
		semanticWeight*float64(breakdown.SemanticCount)
	breakdown.BlendedPct = clampPct(100 * weighted / n)

	breakdown.OverallPct = clampPct(exactShare*breakdown.ExactPct + blendedShare*breakdown.BlendedPct)
	return breakdown
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
