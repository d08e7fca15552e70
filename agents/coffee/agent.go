// Package coffee implements the coffee-ordering demo agent: a slot-filled
// order (drink, size, milk, extras, customer name) gathered over one
// conversation and appended to the order log once complete.
package coffee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/falconlabs/voicedesk/extract"
	"github.com/falconlabs/voicedesk/slot"
	"github.com/falconlabs/voicedesk/store"
)

// Field names of the order schema.
const (
	FieldDrinkType = "drinkType"
	FieldSize      = "size"
	FieldMilk      = "milk"
	FieldExtras    = "extras"
	FieldName      = "name"
)

// Vocabularies recognized by the keyword extraction path.
var (
	DrinkTypes = []string{"latte", "cappuccino", "americano", "espresso", "mocha"}
	Sizes      = []string{"small", "medium", "large"}
	MilkTypes  = []string{"whole", "skim", "oat", "soy", "almond"}
	Extras     = []string{"vanilla", "caramel", "hazelnut", "whipped"}
)

// Schema returns the order slot schema. Extras never block completion but
// are asked about once.
func Schema() slot.Schema {
	return slot.Schema{
		{Name: FieldDrinkType, Prompt: "What drink would you like?", Required: true},
		{Name: FieldSize, Prompt: "What size do you prefer?", Required: true},
		{Name: FieldMilk, Prompt: "What milk would you like?", Required: true},
		{Name: FieldExtras, Prompt: "Any extras like caramel or whipped cream?", List: true, Merge: slot.MergeOverwrite},
		{Name: FieldName, Prompt: "What name should I put on your order?", Required: true},
	}
}

// Record is the persisted form of a completed order.
type Record struct {
	ID        string   `json:"id"`
	DrinkType string   `json:"drinkType"`
	Size      string   `json:"size"`
	Milk      string   `json:"milk"`
	Extras    []string `json:"extras"`
	Name      string   `json:"name"`
	CreatedAt string   `json:"createdAt"`
}

// Agent tracks one customer's order. One Agent exists per conversation
// session; operations are dispatched synchronously by the voice framework.
type Agent struct {
	sessionID string
	state     *slot.State
	keyword   extract.Keyword
	records   store.RecordStore
	logger    *zap.Logger
	persisted bool
}

// New creates an order agent persisting completed orders to records.
func New(records store.RecordStore, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.NewString()
	return &Agent{
		sessionID: sessionID,
		state:     slot.NewState(Schema()),
		keyword: extract.Keyword{
			Rules: []extract.Rule{
				{Field: FieldDrinkType, Vocabulary: DrinkTypes},
				{Field: FieldSize, Vocabulary: Sizes},
				{Field: FieldMilk, Vocabulary: MilkTypes},
				{Field: FieldExtras, Vocabulary: Extras, Multi: true},
			},
			NameField:   FieldName,
			NameMarkers: []string{"my name is", "for"},
		},
		records: records,
		logger:  logger.With(zap.String("agent", "coffee"), zap.String("session_id", sessionID)),
	}
}

// UpdateOrder applies caller-segmented field values (the structured
// extraction path) and returns the reply to speak back: an order summary
// once complete, otherwise a question naming the missing fields.
func (a *Agent) UpdateOrder(ctx context.Context, drinkType, size, milk, extras, name string) (string, error) {
	updates := extract.Structured{Fields: map[string]string{
		FieldDrinkType: drinkType,
		FieldSize:      size,
		FieldMilk:      milk,
		FieldExtras:    extras,
		FieldName:      name,
	}}.Extract("")
	a.state.Update(updates)
	a.logger.Info("order updated", zap.Any("fields", updates))

	if !a.state.IsComplete() {
		if missing := a.state.MissingFields(); len(missing) > 0 {
			return fmt.Sprintf("Could you please tell me your %s?", strings.Join(missing, ", ")), nil
		}
		return "Please provide any remaining details for your order.", nil
	}
	return a.finalize(ctx)
}

// Hear scans a raw utterance for order keywords (the naive extraction path)
// and returns the next question or the completed-order summary. Extras heard
// this way accumulate across utterances instead of overwriting.
func (a *Agent) Hear(ctx context.Context, utterance string) (string, error) {
	updates := a.keyword.Extract(utterance)
	if extras, ok := updates[FieldExtras]; ok {
		a.state.Append(FieldExtras, slot.SplitList(extras)...)
		delete(updates, FieldExtras)
	}
	a.state.Update(updates)

	if !a.state.IsComplete() {
		if prompt := a.state.NextPrompt(); prompt != "" {
			return prompt, nil
		}
		return "Please provide any remaining details for your order.", nil
	}
	return a.finalize(ctx)
}

// Order returns the current order as a persistable record.
func (a *Agent) Order() Record {
	extras := a.state.List(FieldExtras)
	if extras == nil {
		extras = []string{}
	}
	return Record{
		ID:        a.sessionID,
		DrinkType: a.state.Get(FieldDrinkType),
		Size:      a.state.Get(FieldSize),
		Milk:      a.state.Get(FieldMilk),
		Extras:    extras,
		Name:      a.state.Get(FieldName),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Missing returns the required fields still unfilled.
func (a *Agent) Missing() []string { return a.state.MissingFields() }

func (a *Agent) finalize(ctx context.Context) (string, error) {
	rec := a.Order()
	if !a.persisted {
		if err := a.records.Append(ctx, rec); err != nil {
			return "", fmt.Errorf("persist order: %w", err)
		}
		a.persisted = true
		a.logger.Info("order complete",
			zap.String("drink", rec.DrinkType),
			zap.String("size", rec.Size),
			zap.String("name", rec.Name),
		)
	}

	summary := fmt.Sprintf("Thank you, %s! Your order: %s %s with %s milk", rec.Name, rec.Size, rec.DrinkType, rec.Milk)
	if len(rec.Extras) > 0 {
		summary += ", extras: " + strings.Join(rec.Extras, ", ")
	}
	return summary + " has been placed.", nil
}
