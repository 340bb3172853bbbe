package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/talentscout/resumatch/ai"
	"github.com/talentscout/resumatch/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxDocumentChars bounds the resume text sent to the model. Small local
// models lose the schema on long inputs.
const maxDocumentChars = 4000

// parseAttempts is how many times malformed JSON output is retried before
// falling back to a placeholder profile.
const parseAttempts = 3

// AttributeExtractor implements ai.AttributeExtractor using
// OpenAI-compatible chat APIs.
type AttributeExtractor struct {
	client  llms.Model
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  *slog.Logger
}

var _ ai.AttributeExtractor = (*AttributeExtractor)(nil)

// profile is an internal type used for JSON unmarshaling.
// It matches the structure requested from the LLM.
type profile struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	TechnicalSkills []string `json:"technical_skills"`
	Tools           []string `json:"tools"`
	SoftSkills      []string `json:"soft_skills"`
	ExperienceYears string   `json:"experience_years"`
}

// newAttributeExtractor is an internal constructor that returns the
// concrete type. Used by Provider to manage the instance.
func newAttributeExtractor(config *ai.Config) (*AttributeExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "openai-extractor")

	return &AttributeExtractor{
		client:  client,
		breaker: newBreaker("extractor", logger),
		timeout: config.RequestTimeout,
		logger:  logger,
	}, nil
}

// NewAttributeExtractor creates a new attribute extractor using the
// provided configuration.
//
// Returns ai.AttributeExtractor interface to enforce abstraction.
func NewAttributeExtractor(config *ai.Config) (ai.AttributeExtractor, error) {
	return newAttributeExtractor(config)
}

// ExtractQueryAttributes extracts the required skills from a hiring query.
// Conversational filler in the response is filtered out; an answer with no
// usable list yields an empty attribute set, not an error.
func (e *AttributeExtractor) ExtractQueryAttributes(ctx context.Context, query string) ([]string, error) {
	response, err := e.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, buildQueryPrompt(query)),
	}, false)
	if err != nil {
		return nil, err
	}

	line := extractListLine(response)
	if line == "" {
		e.logger.Warn("no skill list found in model response", "query", query)
		return nil, nil
	}

	skills := splitSkillList(line)
	e.logger.Debug("extracted query attributes", "query", query, "skills", skills)
	return skills, nil
}

// ExtractProfile extracts a candidate profile from resume text. Unusable
// model output degrades to a placeholder record so a bad scan still enters
// the corpus instead of vanishing.
func (e *AttributeExtractor) ExtractProfile(ctx context.Context, documentText string) (*core.AttributeRecord, error) {
	if len(documentText) > maxDocumentChars {
		documentText = documentText[:maxDocumentChars]
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildProfilePrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, documentText),
	}

	var parsed profile
	var lastErr error
	for attempt := 0; attempt < parseAttempts; attempt++ {
		response, err := e.generate(ctx, content, true)
		if err != nil {
			return nil, err
		}

		responseText := repairJSON(stripCodeFences(response))
		if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
			lastErr = err
			e.logger.Warn("error parsing profile response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse profile after retries, storing placeholder", "err", lastErr)
		placeholder, _ := core.RepairRecord(&core.AttributeRecord{})
		return placeholder, nil
	}

	record := &core.AttributeRecord{
		Identity: core.Identity{
			Name:  strings.TrimSpace(parsed.Name),
			Email: strings.TrimSpace(parsed.Email),
			Phone: strings.TrimSpace(parsed.Phone),
		},
		TechnicalAttributes: cleanSkills(parsed.TechnicalSkills),
		ToolAttributes:      cleanSkills(parsed.Tools),
		SoftAttributes:      cleanSkills(parsed.SoftSkills),
		Experience:          strings.TrimSpace(parsed.ExperienceYears),
	}

	repaired, wasRepaired := core.RepairRecord(record)
	if wasRepaired {
		e.logger.Warn("profile extraction incomplete, filled placeholders", "name", repaired.Identity.Name)
	}
	return repaired, nil
}

// ExpandAttributes asks the model for skills that commonly co-occur with
// the given ones. The result always starts with the input attributes.
func (e *AttributeExtractor) ExpandAttributes(ctx context.Context, attrs []string) ([]string, error) {
	if len(attrs) == 0 {
		return attrs, nil
	}

	response, err := e.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, buildExpansionPrompt(strings.Join(attrs, ", "))),
	}, false)
	if err != nil {
		return attrs, err
	}

	line := extractListLine(response)
	if line == "" {
		return attrs, nil
	}

	seen := make(map[string]bool, len(attrs))
	expanded := make([]string, 0, len(attrs)*2)
	for _, attr := range attrs {
		seen[attr] = true
		expanded = append(expanded, attr)
	}
	for _, skill := range splitSkillList(line) {
		if !seen[skill] {
			seen[skill] = true
			expanded = append(expanded, skill)
		}
	}

	e.logger.Debug("expanded query attributes", "input", attrs, "expanded", expanded)
	return expanded, nil
}

// generate runs one chat completion through the circuit breaker.
func (e *AttributeExtractor) generate(ctx context.Context, content []llms.MessageContent, jsonMode bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	opts := []llms.CallOption{llms.WithTemperature(0.0)}
	if jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}

	result, err := e.breaker.Execute(func() (any, error) {
		response, err := e.client.GenerateContent(ctx, content, opts...)
		if err != nil {
			return nil, err
		}
		if len(response.Choices) < 1 {
			return nil, ErrEmptyResponse
		}
		return response.Choices[0].Content, nil
	})
	if err != nil {
		e.logger.Error("failed to generate content", "err", err)
		return "", asProviderError(err)
	}

	return result.(string), nil
}

// cleanSkills lowercases, trims, and drops empty skill tokens.
func cleanSkills(skills []string) []string {
	var cleaned []string
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			cleaned = append(cleaned, skill)
		}
	}
	return cleaned
}
