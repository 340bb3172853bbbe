package search

import "github.com/talentscout/resumatch/core"

// SearchMonitor provides hooks to observe the ranking pipeline.
// Implement this interface to track intermediate steps during a search;
// the CLI uses it for verbose output.
type SearchMonitor interface {
	Start(query string)
	AfterExtraction(required core.RequiredAttributes)
	AfterExpansion(expanded []string)
	AfterRetrieval(candidates []*core.AttributeRecord)
	CandidateScored(candidate *core.RankedCandidate)
	Finish(results []*core.RankedCandidate)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterExtraction(_ core.RequiredAttributes)   {}
func (n *noopMonitor) AfterExpansion(_ []string)                   {}
func (n *noopMonitor) AfterRetrieval(_ []*core.AttributeRecord)    {}
func (n *noopMonitor) CandidateScored(_ *core.RankedCandidate)     {}
func (n *noopMonitor) Finish(_ []*core.RankedCandidate)            {}
