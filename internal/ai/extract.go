package ai

import "strings"

const (
	fence       = "```"
	taggedFence = "```json"
)

// ExtractPayload isolates the structured payload from a raw provider
// response. Providers are instructed to reply with only the payload, but in
// practice wrap it in prose or fenced code blocks. Selection order:
//
//  1. the first json-tagged fence, if any
//  2. the first untagged fence, with an optional language-tag line skipped
//  3. the whole text
//
// Only the first matching block is used; anything after its closing
// delimiter is ignored. The caller owns parsing the returned substring.
func ExtractPayload(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrExtractionFailed
	}

	if body, ok := cutFence(trimmed, taggedFence); ok {
		return body, nil
	}
	if body, ok := cutFence(trimmed, fence); ok {
		return body, nil
	}
	return trimmed, nil
}

// cutFence returns the interior of the first block opened by marker and
// closed by the next fence delimiter. An unterminated block does not match.
func cutFence(s, marker string) (string, bool) {
	start := strings.Index(s, marker)
	if start < 0 {
		return "", false
	}
	rest := s[start+len(marker):]
	end := strings.Index(rest, fence)
	if end < 0 {
		return "", false
	}
	body := strings.TrimSpace(rest[:end])

	// An untagged open may still carry a language tag on the opening line.
	if marker == fence {
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && isLangTag(strings.TrimSpace(body[:nl])) {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(body), true
}

// isLangTag reports whether s looks like a fence language tag ("json",
// "JSON", "yaml"...): a single short alphanumeric token.
func isLangTag(s string) bool {
	if s == "" || len(s) > 16 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
