package ai

import (
	"context"

	"github.com/talentscout/resumatch/core"
)

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector has a fixed dimensionality per provider instance.
	// Returns an error wrapping core.ErrProviderUnavailable if the
	// embedding service cannot be reached.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// AttributeExtractor converts free text into structured attributes.
// Both methods are best-effort: on unusable model output they return a
// placeholder result rather than propagating a parse failure past this
// boundary. Implementations must be thread-safe for concurrent use.
type AttributeExtractor interface {
	// ExtractQueryAttributes extracts the required attributes from a search
	// query. The returned strings are raw model output; callers normalize
	// them with core.NormalizeRequired.
	ExtractQueryAttributes(ctx context.Context, query string) ([]string, error)

	// ExtractProfile extracts a candidate profile from document text.
	// On unusable model output it returns a placeholder record (repaired
	// via core.RepairRecord), never nil alongside a nil error.
	ExtractProfile(ctx context.Context, documentText string) (*core.AttributeRecord, error)

	// ExpandAttributes proposes attributes related to the given ones
	// (e.g. "react" suggests "javascript"). The result always contains
	// the input attributes; expansion widens retrieval, never scoring.
	ExpandAttributes(ctx context.Context, attrs []string) ([]string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// AttributeExtractor instances, ensuring they share configuration and
// resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// AttributeExtractor returns the attribute extraction service.
	// The returned AttributeExtractor is safe for concurrent use.
	AttributeExtractor() AttributeExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
