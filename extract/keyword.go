package extract

import "strings"

// Rule scans one field's vocabulary. Candidates are checked in order against
// the lowercased utterance; for scalar rules the first candidate present
// wins, Multi rules collect every matching candidate (comma-joined, so list
// normalization downstream splits them again).
type Rule struct {
	Field      string
	Vocabulary []string
	Multi      bool
}

// Keyword is the naive extraction strategy: case-insensitive substring
// membership against fixed vocabularies, plus an optional name heuristic.
//
// The name heuristic looks for each marker ("my name is", "for") and takes
// the next whitespace-delimited token after its last occurrence. Every
// marker is checked unconditionally, so a later marker's token overwrites an
// earlier one within the same utterance. This is deliberately fragile and
// reproduces the behavior the conversation scripts were tuned against; see
// DESIGN.md.
type Keyword struct {
	Rules       []Rule
	NameField   string // "" disables name extraction
	NameMarkers []string
}

// Extract scans utterance and returns the recognized field values. Names
// come back lowercased like the rest of the scan.
func (k Keyword) Extract(utterance string) map[string]string {
	text := strings.ToLower(utterance)
	out := make(map[string]string)

	for _, rule := range k.Rules {
		if rule.Multi {
			var hits []string
			for _, candidate := range rule.Vocabulary {
				if strings.Contains(text, candidate) {
					hits = append(hits, candidate)
				}
			}
			if len(hits) > 0 {
				out[rule.Field] = strings.Join(hits, ", ")
			}
			continue
		}
		for _, candidate := range rule.Vocabulary {
			if strings.Contains(text, candidate) {
				out[rule.Field] = candidate
				break
			}
		}
	}

	if k.NameField != "" {
		for _, marker := range k.NameMarkers {
			if token := tokenAfter(text, marker); token != "" {
				out[k.NameField] = token
			}
		}
	}

	return out
}

// tokenAfter returns the first whitespace-delimited token following the last
// occurrence of marker, or "" when the marker is absent or trailing.
func tokenAfter(text, marker string) string {
	idx := strings.LastIndex(text, marker)
	if idx < 0 {
		return ""
	}
	fields := strings.Fields(text[idx+len(marker):])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
