// Package leads implements the sales-lead capture demo agent: prospect
// name, company and interest gathered over one conversation, with optional
// contact details and free-form notes, appended to the leads file once
// complete.
package leads

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

// Field names of the lead schema.
const (
	FieldName     = "name"
	FieldCompany  = "company"
	FieldEmail    = "email"
	FieldInterest = "interest"
	FieldNotes    = "notes"
)

// Schema returns the lead slot schema. Notes append rather than overwrite —
// remarks from different points in the call all matter. That divergence from
// the other agents' list policy is intentional.
func Schema() slot.Schema {
	return slot.Schema{
		{Name: FieldName, Prompt: "Could I get your name?", Required: true},
		{Name: FieldCompany, Prompt: "What company are you with?", Required: true},
		{Name: FieldInterest, Prompt: "What are you looking to solve?", Required: true},
		{Name: FieldEmail, Prompt: "What's the best email to reach you at?"},
		{Name: FieldNotes, List: true, Merge: slot.MergeAppend},
	}
}

// Record is the persisted form of a captured lead.
type Record struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Company   string   `json:"company"`
	Email     string   `json:"email"`
	Interest  string   `json:"interest"`
	Notes     []string `json:"notes"`
	CreatedAt string   `json:"createdAt"`
}

// Agent tracks one lead-capture conversation.
type Agent struct {
	sessionID string
	state     *slot.State
	records   store.RecordStore
	logger    *zap.Logger
	persisted bool
}

// New creates a lead agent persisting captured leads to records.
func New(records store.RecordStore, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.NewString()
	return &Agent{
		sessionID: sessionID,
		state:     slot.NewState(Schema()),
		records:   records,
		logger:    logger.With(zap.String("agent", "leads"), zap.String("session_id", sessionID)),
	}
}

// UpdateLead applies caller-segmented field values and returns the reply to
// speak back.
func (a *Agent) UpdateLead(ctx context.Context, name, company, email, interest, notes string) (string, error) {
	updates := extract.Structured{Fields: map[string]string{
		FieldName:     name,
		FieldCompany:  company,
		FieldEmail:    email,
		FieldInterest: interest,
		FieldNotes:    notes,
	}}.Extract("")
	a.state.Update(updates)
	a.logger.Info("lead updated", zap.Any("fields", updates))

	if !a.state.IsComplete() {
		if prompt := a.state.NextPrompt(); prompt != "" {
			return prompt, nil
		}
		return "Anything else I should note down?", nil
	}
	return a.finalize(ctx)
}

// Lead returns the current lead as a persistable record.
func (a *Agent) Lead() Record {
	notes := a.state.List(FieldNotes)
	if notes == nil {
		notes = []string{}
	}
	return Record{
		ID:        a.sessionID,
		Name:      a.state.Get(FieldName),
		Company:   a.state.Get(FieldCompany),
		Email:     a.state.Get(FieldEmail),
		Interest:  a.state.Get(FieldInterest),
		Notes:     notes,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func (a *Agent) finalize(ctx context.Context) (string, error) {
	rec := a.Lead()
	if !a.persisted {
		if err := a.records.Append(ctx, rec); err != nil {
			return "", fmt.Errorf("persist lead: %w", err)
		}
		a.persisted = true
		a.logger.Info("lead captured",
			zap.String("company", rec.Company),
			zap.String("interest", rec.Interest),
		)
	}

	summary := fmt.Sprintf("Great, thanks %s! I've noted that %s is interested in %s.", rec.Name, rec.Company, rec.Interest)
	if len(rec.Notes) > 0 {
		summary += " Notes: " + strings.Join(rec.Notes, "; ") + "."
	}
	summary += " Our team will be in touch shortly."
	return summary, nil
}
