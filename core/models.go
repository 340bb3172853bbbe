package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Identity holds the contact fields of a candidate. All fields are opaque
// strings taken verbatim from extraction output.
type Identity struct {
	Name  string
	Email string
	Phone string
}

// AttributeRecord is a candidate's structured profile as produced by
// attribute extraction. Attribute lists preserve the original casing for
// display; all comparisons happen case-insensitively.
type AttributeRecord struct {
	Id                  ID
	Identity            Identity
	TechnicalAttributes []string
	ToolAttributes      []string
	SoftAttributes      []string
	Experience          string
	SourcePath          string // Provenance reference to the source document
	InsertedAt          time.Time
	UpdatedAt           time.Time
}

// SearchText builds the derived search text forwarded to the retriever for
// indexing. The field order is stable so that identical records always
// produce identical index entries.
func (r *AttributeRecord) SearchText() string {
	parts := []string{
		"Name: " + r.Identity.Name,
		"Skills: " + strings.Join(r.TechnicalAttributes, ", "),
		"Tools: " + strings.Join(r.ToolAttributes, ", "),
		"Soft Skills: " + strings.Join(r.SoftAttributes, ", "),
		"Experience: " + r.Experience,
	}
	return strings.Join(parts, " | ")
}

// MatchTier classifies how (or whether) a required attribute was satisfied
// by a candidate.
type MatchTier int

const (
	// TierExact is a literal or containment match.
	TierExact MatchTier = iota + 1
	// TierRelationship is an embedding similarity in the relationship band,
	// read as "commonly co-occurring" rather than "same concept".
	TierRelationship
	// TierSemantic is an embedding similarity above the acceptance
	// threshold, read as "same concept, different wording".
	TierSemantic
	// TierMissing means no tier claimed the attribute.
	TierMissing
)

// String returns the display name of the tier.
func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierRelationship:
		return "relationship"
	case TierSemantic:
		return "semantic"
	case TierMissing:
		return "missing"
	}
	return "unknown"
}

// MatchResult records how a single required attribute was matched against a
// candidate's attribute list.
type MatchResult struct {
	Attribute        string // The required attribute
	MatchedAttribute string // The candidate attribute that satisfied it (empty for missing)
	Similarity       float64
	Tier             MatchTier
}

// ScoreBreakdown aggregates the per-attribute match results for one
// candidate into the published percentages.
//
// The Pct fields hold unrounded values; rounding to two decimal places
// happens at display time so that sort order stays stable.
type ScoreBreakdown struct {
	ExactCount        int
	RelationshipCount int
	SemanticCount     int
	RequiredCount     int
	CandidateCount    int
	ExactPct          float64
	BlendedPct        float64
	OverallPct        float64
	Matches           []MatchResult
}

// MatchedCount returns the number of required attributes satisfied by any tier.
func (b *ScoreBreakdown) MatchedCount() int {
	return b.ExactCount + b.RelationshipCount + b.SemanticCount
}

// RankedCandidate is one entry of a search result list.
type RankedCandidate struct {
	Record      *AttributeRecord
	Breakdown   *ScoreBreakdown
	Explanation string
}
