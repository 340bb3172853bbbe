package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/talentscout/resumatch/core"
	"github.com/talentscout/resumatch/search"
)

// consoleMonitor prints each search stage to the given writer. Used by the
// --verbose flag so a recruiter can audit why the ranking came out the way
// it did.
type consoleMonitor struct {
	out     io.Writer
	started time.Time
}

var _ search.SearchMonitor = (*consoleMonitor)(nil)

func (m *consoleMonitor) Start(query string) {
	m.started = time.Now()
	fmt.Fprintf(m.out, "query: %s\n", query)
}

func (m *consoleMonitor) AfterExtraction(required core.RequiredAttributes) {
	fmt.Fprintf(m.out, "required attributes: [%s]\n", strings.Join(required, ", "))
}

func (m *consoleMonitor) AfterExpansion(expanded []string) {
	fmt.Fprintf(m.out, "expanded for retrieval: [%s]\n", strings.Join(expanded, ", "))
}

func (m *consoleMonitor) AfterRetrieval(candidates []*core.AttributeRecord) {
	names := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		names = append(names, candidate.Identity.Name)
	}
	fmt.Fprintf(m.out, "retrieved %d candidates: [%s]\n", len(candidates), strings.Join(names, ", "))
}

func (m *consoleMonitor) CandidateScored(candidate *core.RankedCandidate) {
	fmt.Fprintf(m.out, "scored %s: exact=%d related=%d similar=%d overall=%.2f%%\n",
		candidate.Record.Identity.Name,
		candidate.Breakdown.ExactCount,
		candidate.Breakdown.RelationshipCount,
		candidate.Breakdown.SemanticCount,
		candidate.Breakdown.OverallPct)
}

func (m *consoleMonitor) Finish(results []*core.RankedCandidate) {
	fmt.Fprintf(m.out, "ranked %d results in %s\n", len(results), time.Since(m.started).Round(time.Millisecond))
}
