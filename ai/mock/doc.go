// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.AttributeExtractor, and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "python")
//
//	// Prescribed similarities via fixed vectors
//	embedder := mock.NewVectorMapEmbedder(map[string][]float32{
//	    "react": {1, 0},
//	    "html":  {0.55, 0.835},
//	})
//
//	// Custom behavior injection
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("unavailable")
//	}
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockExtractor: Splits queries on commas, parses profiles line-wise
//   - MockProvider: Aggregates mock embedder and extractor
package mock
