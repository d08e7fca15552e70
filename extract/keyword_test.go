package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func orderKeyword() Keyword {
	return Keyword{
		Rules: []Rule{
			{Field: "drinkType", Vocabulary: []string{"latte", "cappuccino", "americano", "espresso", "mocha"}},
			{Field: "size", Vocabulary: []string{"small", "medium", "large"}},
			{Field: "milk", Vocabulary: []string{"whole", "skim", "oat", "soy", "almond"}},
			{Field: "extras", Vocabulary: []string{"vanilla", "caramel", "hazelnut", "whipped"}, Multi: true},
		},
		NameField:   "name",
		NameMarkers: []string{"my name is", "for"},
	}
}

func TestKeyword_ExtractOrderUtterance(t *testing.T) {
	got := orderKeyword().Extract("I'd like a medium latte with oat milk")

	assert.Equal(t, "latte", got["drinkType"])
	assert.Equal(t, "medium", got["size"])
	assert.Equal(t, "oat", got["milk"])
	_, hasName := got["name"]
	assert.False(t, hasName)
}

func TestKeyword_ScalarFirstCandidateWins(t *testing.T) {
	// Both latte and mocha appear; latte comes first in the vocabulary.
	got := orderKeyword().Extract("a mocha, no wait, a latte please")
	assert.Equal(t, "latte", got["drinkType"])
}

func TestKeyword_MultiCollectsEveryHit(t *testing.T) {
	got := orderKeyword().Extract("caramel and whipped cream on a large cappuccino")
	assert.Equal(t, "caramel, whipped", got["extras"])
	assert.Equal(t, "cappuccino", got["drinkType"])
	assert.Equal(t, "large", got["size"])
}

func TestKeyword_NameMarkers(t *testing.T) {
	k := orderKeyword()

	got := k.Extract("hi, my name is Dana")
	assert.Equal(t, "dana", got["name"])

	got = k.Extract("a small americano for Priya please")
	assert.Equal(t, "priya", got["name"])

	// Both markers in one utterance: "for" is checked after "my name is",
	// so its token wins (last-match-wins, reproduced on purpose).
	got = k.Extract("my name is Dana but the order is for Alex")
	assert.Equal(t, "alex", got["name"])
}

func TestKeyword_NoRecognizableValue(t *testing.T) {
	got := orderKeyword().Extract("hmm let me think about it")
	assert.Empty(t, got)
}

func TestStructured_PassesThroughNonEmpty(t *testing.T) {
	s := Structured{Fields: map[string]string{
		"drinkType": "latte",
		"size":      "",
		"name":      "Alice",
	}}

	got := s.Extract("ignored")
	assert.Equal(t, map[string]string{"drinkType": "latte", "name": "Alice"}, got)
}

// Extraction never panics and only ever returns fields a rule (or the name
// heuristic) owns, whatever the utterance looks like.
func TestKeyword_ExtractIsTotal(t *testing.T) {
	k := orderKeyword()
	known := map[string]bool{"drinkType": true, "size": true, "milk": true, "extras": true, "name": true}

	rapid.Check(t, func(t *rapid.T) {
		utterance := rapid.String().Draw(t, "utterance")
		got := k.Extract(utterance)
		for field := range got {
			if !known[field] {
				t.Fatalf("unexpected field %q", field)
			}
		}
	})
}
