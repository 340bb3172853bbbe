package openai

import "strings"

// fillerPrefixes start lines the model prepends despite being told not to.
var fillerPrefixes = []string{"sure", "here", "based", "the ", "essential", "okay", "certainly"}

// isFillerLine reports whether a response line is conversational filler
// rather than the skill list itself.
func isFillerLine(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range fillerPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// extractListLine picks the line of a model response that carries the
// comma-separated list, skipping filler. Returns "" when no line qualifies.
func extractListLine(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isFillerLine(line) {
			continue
		}
		if strings.Contains(line, ",") || len(strings.Fields(line)) <= 5 {
			return strings.TrimRight(line, ".!:")
		}
	}
	return ""
}

// splitSkillList splits a comma-separated skill list into cleaned tokens.
func splitSkillList(line string) []string {
	var skills []string
	for _, token := range strings.Split(line, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || len(token) < 2 || isFillerLine(token) {
			continue
		}
		skills = append(skills, token)
	}
	return skills
}

// stripCodeFences removes markdown code fences around a JSON response.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
