package mock

import (
	"context"
	"strings"

	"github.com/talentscout/resumatch/core"
)

// MockExtractor is a test double for ai.AttributeExtractor.
// It allows custom behavior injection via function fields.
type MockExtractor struct {
	// ExtractQueryAttributesFunc is called by ExtractQueryAttributes if set.
	// If nil, uses default comma/whitespace splitting.
	ExtractQueryAttributesFunc func(ctx context.Context, query string) ([]string, error)

	// ExtractProfileFunc is called by ExtractProfile if set.
	// If nil, uses default line-based extraction.
	ExtractProfileFunc func(ctx context.Context, documentText string) (*core.AttributeRecord, error)

	// ExpandAttributesFunc is called by ExpandAttributes if set.
	// If nil, expansion returns the input unchanged.
	ExpandAttributesFunc func(ctx context.Context, attrs []string) ([]string, error)

	callCount int
}

// NewMockExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// ExtractQueryAttributes splits the query on commas, falling back to
// whitespace when no comma is present.
func (m *MockExtractor) ExtractQueryAttributes(ctx context.Context, query string) ([]string, error) {
	m.callCount++

	if m.ExtractQueryAttributesFunc != nil {
		return m.ExtractQueryAttributesFunc(ctx, query)
	}

	var tokens []string
	if strings.Contains(query, ",") {
		tokens = strings.Split(query, ",")
	} else {
		tokens = strings.Fields(query)
	}

	attrs := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token != "" {
			attrs = append(attrs, token)
		}
	}
	return attrs, nil
}

// ExtractProfile builds a minimal record from the document text: the first
// line becomes the name, the remaining comma-separated tokens become
// technical attributes.
func (m *MockExtractor) ExtractProfile(ctx context.Context, documentText string) (*core.AttributeRecord, error) {
	m.callCount++

	if m.ExtractProfileFunc != nil {
		return m.ExtractProfileFunc(ctx, documentText)
	}

	lines := strings.Split(strings.TrimSpace(documentText), "\n")
	record := &core.AttributeRecord{}
	if len(lines) > 0 {
		record.Identity.Name = strings.TrimSpace(lines[0])
	}
	for _, line := range lines[1:] {
		for _, token := range strings.Split(line, ",") {
			token = strings.TrimSpace(token)
			if token != "" {
				record.TechnicalAttributes = append(record.TechnicalAttributes, token)
			}
		}
	}

	repaired, _ := core.RepairRecord(record)
	return repaired, nil
}

// ExpandAttributes returns the input attributes unchanged by default.
func (m *MockExtractor) ExpandAttributes(ctx context.Context, attrs []string) ([]string, error) {
	m.callCount++

	if m.ExpandAttributesFunc != nil {
		return m.ExpandAttributesFunc(ctx, attrs)
	}
	return attrs, nil
}

// CallCount returns the number of times any method was called.
func (m *MockExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockExtractor) Reset() {
	m.callCount = 0
	m.ExtractQueryAttributesFunc = nil
	m.ExtractProfileFunc = nil
	m.ExpandAttributesFunc = nil
}
