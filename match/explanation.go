package match

import (
	"fmt"
	"strings"

	"github.com/talentscout/resumatch/core"
)

// clauseDelimiter joins the summary and tier clauses of an explanation.
const clauseDelimiter = " | "

// NoRequirementsExplanation is emitted when the query yielded no required
// attributes, instead of a division-derived percentage.
const NoRequirementsExplanation = "No skill requirements extracted from query"

// Explanation renders a breakdown into the human-auditable match string:
//
//	2/3 skills (76.67%) | Exact: python, django | Related: react→html (62.0%) | Missing: kubernetes
//
// Clause order is fixed (Exact, Related, Similar, Missing); empty clauses
// are omitted. Percentages are rounded for display only.
func Explanation(breakdown *core.ScoreBreakdown) string {
	if breakdown.RequiredCount == 0 {
		return NoRequirementsExplanation
	}

	var exact, related, similar, missing []string
	for _, m := range breakdown.Matches {
		switch m.Tier {
		case core.TierExact:
			exact = append(exact, m.Attribute)
		case core.TierRelationship:
			related = append(related, fmt.Sprintf("%s→%s (%.1f%%)", m.Attribute, m.MatchedAttribute, m.Similarity*100))
		case core.TierSemantic:
			similar = append(similar, fmt.Sprintf("%s (%.1f%%)", m.MatchedAttribute, m.Similarity*100))
		case core.TierMissing:
			missing = append(missing, m.Attribute)
		}
	}

	parts := []string{fmt.Sprintf("%d/%d skills (%.2f%%)",
		breakdown.MatchedCount(), breakdown.RequiredCount, Round2(breakdown.OverallPct))}

	if len(exact) > 0 {
		parts = append(parts, "Exact: "+strings.Join(exact, ", "))
	}
	if len(related) > 0 {
		parts = append(parts, "Related: "+strings.Join(related, "; "))
	}
	if len(similar) > 0 {
		parts = append(parts, "Similar: "+strings.Join(similar, "; "))
	}
	if len(missing) > 0 {
		parts = append(parts, "Missing: "+strings.Join(missing, ", "))
	}

	return strings.Join(parts, clauseDelimiter)
}
