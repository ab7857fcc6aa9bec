package summary

import "strings"

// Sanitize strips markdown fences and extracts the JSON object from raw model
// output. Models wrap responses in code fences or surround them with
// commentary; this makes a best-effort recovery of the substring between the
// first "{" and the last "}". It does not check JSON well-formedness; that is
// Validate's job. When no brace pair is found the input comes back unchanged.
func Sanitize(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
