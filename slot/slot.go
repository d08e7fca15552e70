package slot

import "strings"

// MergePolicy controls how a list field absorbs newly extracted values.
type MergePolicy string

const (
	MergeOverwrite MergePolicy = "overwrite" // replace the whole list
	MergeAppend    MergePolicy = "append"    // append, de-duplicated
)

// FieldSpec declares one conversational slot.
type FieldSpec struct {
	Name     string
	Prompt   string // question asked when the field is still empty; "" = never asked
	Required bool
	List     bool
	Merge    MergePolicy // list fields only
}

// Schema is an ordered set of field declarations. Order matters: missing
// fields and prompts are reported in declaration order.
type Schema []FieldSpec

// Field returns the declaration for name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// State holds the slot values of one conversation session. One State exists
// per active session and is mutated synchronously by the conversation driver;
// it is not safe for concurrent use.
type State struct {
	schema  Schema
	scalars map[string]string
	lists   map[string][]string
}

// NewState creates an empty State over schema.
func NewState(schema Schema) *State {
	return &State{
		schema:  schema,
		scalars: make(map[string]string),
		lists:   make(map[string][]string),
	}
}

// Schema returns the schema the state was built from.
func (st *State) Schema() Schema { return st.schema }

// Update applies the non-empty entries of updates. Fields absent from
// updates, unknown fields, and fields whose new value is blank are left
// untouched, so a previously set value is never cleared. List values are
// normalized via SplitList before merging.
func (st *State) Update(updates map[string]string) {
	for _, f := range st.schema {
		raw, ok := updates[f.Name]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if !f.List {
			st.scalars[f.Name] = strings.TrimSpace(raw)
			continue
		}
		values := SplitList(raw)
		if len(values) == 0 {
			continue
		}
		if f.Merge == MergeAppend {
			st.lists[f.Name] = appendUnique(st.lists[f.Name], values...)
		} else {
			st.lists[f.Name] = values
		}
	}
}

// Append adds values to a list field, de-duplicated, regardless of the
// field's declared merge policy. Used by keyword extraction, which collects
// list hits incrementally across utterances.
func (st *State) Append(name string, values ...string) {
	f, ok := st.schema.Field(name)
	if !ok || !f.List {
		return
	}
	st.lists[name] = appendUnique(st.lists[name], values...)
}

// Get returns a scalar field's value ("" when unset).
func (st *State) Get(name string) string { return st.scalars[name] }

// List returns a copy of a list field's values.
func (st *State) List(name string) []string {
	values := st.lists[name]
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// filled reports whether a field holds a value.
func (st *State) filled(f FieldSpec) bool {
	if f.List {
		return len(st.lists[f.Name]) > 0
	}
	return st.scalars[f.Name] != ""
}

// IsComplete reports whether every required field is non-empty. Optional
// fields never block completion.
func (st *State) IsComplete() bool {
	for _, f := range st.schema {
		if f.Required && !st.filled(f) {
			return false
		}
	}
	return true
}

// MissingFields returns the required fields still empty, in declaration
// order.
func (st *State) MissingFields() []string {
	var missing []string
	for _, f := range st.schema {
		if f.Required && !st.filled(f) {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// NextPrompt returns the question for the first unfilled field that declares
// a prompt, in declaration order. Optional fields are asked about too (the
// coffee agent checks for extras once), they just never gate completion.
// Returns "" when every prompted field is filled.
func (st *State) NextPrompt() string {
	for _, f := range st.schema {
		if f.Prompt == "" || st.filled(f) {
			continue
		}
		return f.Prompt
	}
	return ""
}

// Snapshot returns every declared field keyed by name: string for scalars,
// []string for lists. Suitable for persisting as a record body.
func (st *State) Snapshot() map[string]any {
	out := make(map[string]any, len(st.schema))
	for _, f := range st.schema {
		if f.List {
			values := st.lists[f.Name]
			if values == nil {
				values = []string{}
			}
			out[f.Name] = append([]string(nil), values...)
		} else {
			out[f.Name] = st.scalars[f.Name]
		}
	}
	return out
}

// SplitList normalizes a raw list value: split on commas, trim whitespace,
// drop empty tokens and the literal "none" sentinel.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "none") {
			continue
		}
		out = append(out, part)
	}
	return out
}

func appendUnique(existing []string, values ...string) []string {
	for _, v := range values {
		seen := false
		for _, have := range existing {
			if have == v {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, v)
		}
	}
	return existing
}
