// Package openai implements the ai interfaces against OpenAI-compatible
// HTTP services (Ollama, vLLM, OpenAI itself).
//
// Embedding and attribute extraction may target different hosts and models;
// both default to a local Ollama endpoint. Calls run through a circuit
// breaker so a dead provider fails fast instead of stalling every
// ingestion worker, and errors wrap core.ErrProviderUnavailable for
// callers that degrade rather than abort.
package openai
