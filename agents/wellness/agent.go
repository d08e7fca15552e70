// Package wellness implements the wellness check-in demo agent: a short
// daily check-in (mood, energy, sleep, optional objectives) appended to the
// check-in log once complete.
package wellness

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

// Field names of the check-in schema.
const (
	FieldMood       = "mood"
	FieldEnergy     = "energy"
	FieldSleep      = "sleep"
	FieldObjectives = "objectives"
)

// Schema returns the check-in slot schema. Objectives are optional and each
// check-in states them fresh, so the list overwrites.
func Schema() slot.Schema {
	return slot.Schema{
		{Name: FieldMood, Prompt: "How are you feeling today?", Required: true},
		{Name: FieldEnergy, Prompt: "How is your energy level?", Required: true},
		{Name: FieldSleep, Prompt: "How did you sleep last night?", Required: true},
		{Name: FieldObjectives, Prompt: "Anything you want to focus on today?", List: true, Merge: slot.MergeOverwrite},
	}
}

// Record is the persisted form of a completed check-in.
type Record struct {
	ID         string   `json:"id"`
	Mood       string   `json:"mood"`
	Energy     string   `json:"energy"`
	Sleep      string   `json:"sleep"`
	Objectives []string `json:"objectives"`
	CreatedAt  string   `json:"createdAt"`
}

// Agent tracks one check-in conversation.
type Agent struct {
	sessionID string
	state     *slot.State
	records   store.RecordStore
	logger    *zap.Logger
	persisted bool
}

// New creates a check-in agent persisting completed check-ins to records.
func New(records store.RecordStore, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.NewString()
	return &Agent{
		sessionID: sessionID,
		state:     slot.NewState(Schema()),
		records:   records,
		logger:    logger.With(zap.String("agent", "wellness"), zap.String("session_id", sessionID)),
	}
}

// UpdateCheckIn applies caller-segmented field values and returns the reply
// to speak back. Objectives overwrite: each check-in states today's focus
// fresh.
func (a *Agent) UpdateCheckIn(ctx context.Context, mood, energy, sleep, objectives string) (string, error) {
	updates := extract.Structured{Fields: map[string]string{
		FieldMood:       mood,
		FieldEnergy:     energy,
		FieldSleep:      sleep,
		FieldObjectives: objectives,
	}}.Extract("")
	a.state.Update(updates)
	a.logger.Info("check-in updated", zap.Any("fields", updates))

	if !a.state.IsComplete() {
		if prompt := a.state.NextPrompt(); prompt != "" {
			return prompt, nil
		}
		return "Is there anything else about today you'd like to log?", nil
	}
	return a.finalize(ctx)
}

// CheckIn returns the current check-in as a persistable record.
func (a *Agent) CheckIn() Record {
	objectives := a.state.List(FieldObjectives)
	if objectives == nil {
		objectives = []string{}
	}
	return Record{
		ID:         a.sessionID,
		Mood:       a.state.Get(FieldMood),
		Energy:     a.state.Get(FieldEnergy),
		Sleep:      a.state.Get(FieldSleep),
		Objectives: objectives,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (a *Agent) finalize(ctx context.Context) (string, error) {
	rec := a.CheckIn()
	if !a.persisted {
		if err := a.records.Append(ctx, rec); err != nil {
			return "", fmt.Errorf("persist check-in: %w", err)
		}
		a.persisted = true
		a.logger.Info("check-in complete", zap.String("mood", rec.Mood))
	}

	summary := fmt.Sprintf("Thanks for checking in! I've logged mood %s, energy %s, and sleep %s.", rec.Mood, rec.Energy, rec.Sleep)
	if len(rec.Objectives) > 0 {
		summary += " Today's focus: " + strings.Join(rec.Objectives, ", ") + "."
	}
	return summary, nil
}
