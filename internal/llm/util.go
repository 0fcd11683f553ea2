package llm

import (
	"errors"
	"strings"
)

// ErrMultipleValues is returned by ExtractJSON when a second JSON value follows the first.
var ErrMultipleValues = errors.New("response contains more than one top-level JSON value")

// CleanJSONBlock strips markdown fences and conversational text around a JSON payload.
// Models sometimes wrap JSON in ```json ... ``` blocks even when the response is
// constrained to JSON.
func CleanJSONBlock(text string) string {
	value, _ := splitJSONBlock(text)
	return value
}

// ExtractJSON is CleanJSONBlock for callers that must not lose data: it fails when the
// payload is followed by another object or array, as in `{"a":1}{"a":2}`. Trailing prose
// is still dropped.
func ExtractJSON(text string) (string, error) {
	value, rest := splitJSONBlock(text)
	rest = strings.TrimLeft(rest, " \t\r\n,")
	if rest != "" && (rest[0] == '{' || rest[0] == '[') {
		return "", ErrMultipleValues
	}
	return value, nil
}

// splitJSONBlock returns the JSON payload of text and whatever followed it.
func splitJSONBlock(text string) (string, string) {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if text == "" || text[0] == '{' || text[0] == '[' {
		if extracted := extractJSONValue(text); extracted != "" {
			return extracted, text[len(extracted):]
		}
		return text, ""
	}

	// Preamble before the payload: start at the first bracket that yields a balanced value
	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		if extracted := extractJSONValue(text[i:]); extracted != "" {
			return extracted, text[i+len(extracted):]
		}
	}

	return text, ""
}

// extractJSONValue returns the balanced object or array at the start of text, ignoring
// brackets inside strings. It returns "" when text does not start with one.
func extractJSONValue(text string) string {
	if text == "" || (text[0] != '{' && text[0] != '[') {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
