// Package ai defines the interfaces for the external AI collaborators:
// text embedding and attribute extraction.
//
// The matching and ranking core depends only on these interfaces, never on
// a concrete client, so every scoring decision can be reproduced in tests
// with the deterministic doubles in the mock subpackage. Production
// implementations backed by OpenAI-compatible services live in the openai
// subpackage.
package ai
