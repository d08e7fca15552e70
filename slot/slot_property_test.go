package slot

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"pgregory.net/rapid"
)

// Property: after any sequence of partial updates, IsComplete is true iff
// every required field ended up non-empty, and MissingFields lists exactly
// the required fields still empty, in declaration order.
func TestProperty_CompletionMatchesRequiredFields(t *testing.T) {
	schema := Schema{
		{Name: "a", Required: true},
		{Name: "b", Required: true},
		{Name: "c"},
		{Name: "tags", List: true, Merge: MergeOverwrite},
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genUpdate := gen.MapOf(
		gen.OneConstOf("a", "b", "c", "tags", "unknown"),
		gen.OneConstOf("", "  ", "x", "y, z", "none"),
	)

	properties.Property("complete iff all required non-empty", prop.ForAll(
		func(updates []map[string]string) bool {
			st := NewState(schema)
			for _, u := range updates {
				st.Update(u)
			}

			var wantMissing []string
			for _, f := range schema {
				if !f.Required {
					continue
				}
				if st.Get(f.Name) == "" {
					wantMissing = append(wantMissing, f.Name)
				}
			}

			if st.IsComplete() != (len(wantMissing) == 0) {
				return false
			}
			missing := st.MissingFields()
			if len(missing) != len(wantMissing) {
				return false
			}
			for i := range missing {
				if missing[i] != wantMissing[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genUpdate),
	))

	properties.Property("scalar updates are order-independent", prop.ForAll(
		func(va, vb string) bool {
			first := NewState(schema)
			first.Update(map[string]string{"a": va})
			first.Update(map[string]string{"b": vb})

			second := NewState(schema)
			second.Update(map[string]string{"b": vb})
			second.Update(map[string]string{"a": va})

			return first.Get("a") == second.Get("a") &&
				first.Get("b") == second.Get("b") &&
				first.IsComplete() == second.IsComplete()
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Property: an empty or blank update value never clears a previously set
// field, and re-applying the same value is idempotent.
func TestProperty_UpdateNeverClears(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		schema := Schema{
			{Name: "field", Required: true},
		}
		st := NewState(schema)

		value := rapid.StringMatching(`[a-zA-Z][a-zA-Z ]{0,20}`).Draw(t, "value")
		st.Update(map[string]string{"field": value})
		want := st.Get("field")
		if want == "" {
			t.Skip("value normalized to empty")
		}

		blank := rapid.SampledFrom([]string{"", " ", "\t", "   "}).Draw(t, "blank")
		st.Update(map[string]string{"field": blank})
		if st.Get("field") != want {
			t.Fatalf("blank update cleared field: %q -> %q", want, st.Get("field"))
		}

		st.Update(map[string]string{"field": value})
		if st.Get("field") != want {
			t.Fatalf("re-applying value changed field: %q -> %q", want, st.Get("field"))
		}
	})
}
