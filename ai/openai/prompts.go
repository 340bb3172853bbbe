package openai

import "fmt"

const profileResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "email": {"type": "string"},
    "phone": {"type": "string"},
    "technical_skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "tools": {
      "type": "array",
      "items": {"type": "string"}
    },
    "soft_skills": {
      "type": "array",
      "items": {"type": "string"}
    },
    "experience_years": {"type": "string"}
  },
  "required": ["name", "technical_skills"],
  "additionalProperties": false
}`

const profilePromptTemplate = `You are a skill extraction expert. Extract the candidate's identity and ALL technical skills, soft skills, and tools from the resume text you are given.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Skill and tool names must be lowercase, 1-3 words each.
- Include only skills that are explicitly mentioned in the resume. Do not hallucinate.
- Use "" for identity fields that do not appear in the text.
- experience_years is a short phrase like "5 years" or an estimate; use "Unknown" when the resume gives no hint.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// buildProfilePrompt returns the system prompt for profile extraction.
func buildProfilePrompt() string {
	return fmt.Sprintf(profilePromptTemplate, profileResponseSchema)
}

const queryExtractionPromptTemplate = `Extract the technical skills from this hiring query: %q

Return ONLY a comma-separated list of skills, lowercase. No explanations.

Output:`

// buildQueryPrompt returns the prompt for required-skill extraction.
func buildQueryPrompt(query string) string {
	return fmt.Sprintf(queryExtractionPromptTemplate, query)
}

const expansionPromptTemplate = `These technical skills appear in a hiring query: %s

List additional skills that commonly appear alongside them on matching resumes
(frameworks, languages, closely related tools). Return ONLY a comma-separated
list of skills, lowercase. No explanations.

Output:`

// buildExpansionPrompt returns the prompt for related-skill expansion.
func buildExpansionPrompt(attrs string) string {
	return fmt.Sprintf(expansionPromptTemplate, attrs)
}
