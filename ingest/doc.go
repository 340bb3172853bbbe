// Package ingest turns resume documents into candidate records.
//
// A Pipeline parses each document to plain text, runs attribute extraction
// through the AI provider, repairs incomplete profiles with placeholders,
// and inserts the result into the candidate store. Directory ingestion fans
// files out over a worker pool; per-file failures and duplicates are
// counted in the returned report, never abort the batch.
package ingest
