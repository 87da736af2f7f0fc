package summarizer

import (
	"encoding/json"
	"strings"
)

const (
	summaryMarker     = "Summary:"
	actionItemsMarker = "Action Items:"
)

// parseResponse extracts the summary and action-item list from a raw model
// response. The expected grammar is two labeled sections, the second
// containing a JSON array of strings; anything that doesn't match degrades
// to safe defaults instead of failing:
//   - no "Summary:" marker: the whole response is the summary, items empty
//   - no bracketed list, or invalid JSON inside it: items empty
//   - non-string array elements: re-encoded as JSON text
func parseResponse(raw string) (string, []string) {
	idx := strings.Index(raw, summaryMarker)
	if idx < 0 {
		return strings.TrimSpace(raw), []string{}
	}

	rest := raw[idx+len(summaryMarker):]
	summary := rest
	itemsSection := ""
	if split := strings.Index(rest, actionItemsMarker); split >= 0 {
		summary = rest[:split]
		itemsSection = rest[split+len(actionItemsMarker):]
	}

	// The model sometimes repeats the heading at the end of the summary.
	summary = strings.TrimSpace(summary)
	summary = strings.TrimSpace(strings.TrimSuffix(summary, actionItemsMarker))

	return summary, parseActionItems(itemsSection)
}

// parseActionItems finds the first bracket-delimited span and decodes it as
// a strict JSON array. Returns an empty list on any mismatch.
func parseActionItems(section string) []string {
	start := strings.Index(section, "[")
	if start < 0 {
		return []string{}
	}

	// A json.Decoder reads exactly one value, so trailing prose after the
	// closing bracket doesn't matter and nested brackets are handled.
	var decoded []interface{}
	if err := json.NewDecoder(strings.NewReader(section[start:])).Decode(&decoded); err != nil {
		return []string{}
	}

	items := make([]string, 0, len(decoded))
	for _, v := range decoded {
		if s, ok := v.(string); ok {
			items = append(items, s)
			continue
		}
		coerced, err := json.Marshal(v)
		if err != nil {
			continue
		}
		items = append(items, string(coerced))
	}
	return items
}
