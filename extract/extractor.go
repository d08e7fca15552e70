package extract

// Extractor maps one piece of user input to field updates. Returned maps
// contain only fields a value was found for; empty maps are fine.
type Extractor interface {
	Extract(utterance string) map[string]string
}

// Structured carries field values segmented by the caller (the LLM tool-call
// layer of the voice framework). Extract ignores the utterance and returns
// the non-empty fields; validation and merging stay with the slot tracker.
type Structured struct {
	Fields map[string]string
}

// Extract returns the non-empty caller-supplied fields.
func (s Structured) Extract(string) map[string]string {
	out := make(map[string]string, len(s.Fields))
	for field, value := range s.Fields {
		if value == "" {
			continue
		}
		out[field] = value
	}
	return out
}
