package client

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripTags = bluemonday.StrictPolicy()

// extractDescription reads the "description" field, which Open Library
// stores either as a plain string or as {"type": "/type/text", "value": "..."}.
func extractDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &text); err == nil && text.Value != "" {
		return text.Value
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return ""
}

// sanitizeDescription strips any markup so the text is safe to print in a terminal
func sanitizeDescription(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = html.UnescapeString(stripTags.Sanitize(s))
	return strings.TrimSpace(s)
}
