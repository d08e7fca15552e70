// Package voicedesk provides a top-level convenience entry point for wiring
// the demo agents with their default stores.
//
// Usage:
//
//	import "github.com/falconlabs/voicedesk"
//
//	a := voicedesk.NewCoffeeAgent("data", logger)
//	f, err := voicedesk.NewFraudAgent("data/fraud_cases.db", logger)
//
// Each constructor returns a fresh per-conversation agent; create one per
// session. The voice framework (STT/LLM/TTS) drives the returned agents and
// speaks their string replies back to the user.
package voicedesk

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/falconlabs/voicedesk/agents/coffee"
	"github.com/falconlabs/voicedesk/agents/fraud"
	"github.com/falconlabs/voicedesk/agents/leads"
	"github.com/falconlabs/voicedesk/agents/wellness"
	"github.com/falconlabs/voicedesk/internal/database"
	"github.com/falconlabs/voicedesk/store"
)

// Record file names under the data directory, one per agent type.
const (
	OrdersFile   = "orders.json"
	CheckInsFile = "checkins.json"
	LeadsFile    = "leads.json"
)

// NewCoffeeAgent creates a coffee-order agent appending to
// dataDir/orders.json.
func NewCoffeeAgent(dataDir string, logger *zap.Logger) *coffee.Agent {
	return coffee.New(store.NewJSONStore(filepath.Join(dataDir, OrdersFile), logger), logger)
}

// NewWellnessAgent creates a wellness check-in agent appending to
// dataDir/checkins.json.
func NewWellnessAgent(dataDir string, logger *zap.Logger) *wellness.Agent {
	return wellness.New(store.NewJSONStore(filepath.Join(dataDir, CheckInsFile), logger), logger)
}

// NewLeadAgent creates a sales-lead agent appending to dataDir/leads.json.
func NewLeadAgent(dataDir string, logger *zap.Logger) *leads.Agent {
	return leads.New(store.NewJSONStore(filepath.Join(dataDir, LeadsFile), logger), logger)
}

// NewFraudAgent opens (and seeds, if empty) the case database at dbPath and
// returns a fraud-review agent over it.
func NewFraudAgent(dbPath string, logger *zap.Logger) (*fraud.Agent, error) {
	cases, err := OpenCaseStore(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return fraud.New(cases, logger), nil
}

// OpenCaseStore opens the SQLite case database at dbPath, migrating and
// seeding as needed. Share one store across fraud agents; the agents
// themselves are per-conversation.
func OpenCaseStore(dbPath string, logger *zap.Logger) (*store.CaseStore, error) {
	db, err := database.Open(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return store.NewCaseStore(db, logger)
}
