// Package search implements the ranking pipeline: a free-text hiring query
// becomes a required attribute set, the candidate store is narrowed to the
// most relevant records, and each surviving candidate is scored and ranked
// with a human-auditable explanation.
//
// Query expansion, when enabled, widens only the retrieval step. Scoring
// always runs against the attributes extracted from the query itself, so an
// expanded search can surface more candidates but never inflates their
// scores.
package search
