// Package corpus implements the candidate store: the deduplicated,
// searchable collection of ingested candidate records.
//
// A Store coordinates three persisted artifacts — candidate records, the
// content fingerprint set, and the vector index — behind a single mutex so
// that duplicate detection and insertion are atomic with respect to
// concurrent ingestion. After any completed Add, the record count and the
// fingerprint count are equal.
//
// Load performs partial-state recovery: a missing fingerprint set is
// recomputed from the records, and a missing vector index is rebuilt by
// re-embedding each record's search text. An unreadable artifact is logged
// and treated as absent; recovery never fails the startup path.
package corpus
