// Package match implements the tiered matching and scoring engine.
//
// Given the required attributes extracted from a query and a candidate's
// attribute list, the engine classifies every required attribute into
// exactly one of four tiers, in strict priority order:
//
//  1. Exact — literal case-insensitive equality, or the required attribute
//     contained in a candidate attribute (length > 3).
//  2. Relationship — best cosine similarity falls inside the relationship
//     band, read as "commonly co-occurring" (e.g. react and html).
//  3. Semantic — best cosine similarity clears the acceptance threshold,
//     read as "same concept, different wording".
//  4. Missing — nothing claimed the attribute.
//
// The four tiers partition the required set: each attribute is claimed by
// at most one tier, and a claimed attribute is never reconsidered by a
// later tier. Tier counts blend into a single percentage that callers use
// as the ranking sort key, alongside a human-auditable explanation string.
//
// The engine is deterministic for a given Embedder: identical inputs always
// produce identical breakdowns. It holds no state between calls and is safe
// for concurrent use.
package match
