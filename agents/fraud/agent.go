// Package fraud implements the bank fraud-verification demo agent. Unlike
// the slot-filling agents it walks a fixed phase machine: find the
// customer's pending case, verify their identity against the stored
// security question, disclose the flagged transaction, and record the
// customer's decision. Out-of-order operations re-prompt instead of failing.
package fraud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/falconlabs/voicedesk/store"
)

// Fixed conversational messages.
const (
	MsgGreeting = "Hello, this is the fraud prevention desk. We flagged a recent transaction on your card and need to confirm it with you. Could you tell me your full name?"

	MsgNotFound = "I'm sorry, I couldn't find any pending review under that name. If you believe this is an error, please contact your branch directly."

	MsgVerificationFailed = "I'm sorry, that answer doesn't match our records. For your security I can't discuss this case over the phone. Please visit your nearest branch with a photo ID to resolve it in person."

	msgNeedName   = "I still need your full name before we can go any further. Could you tell me your full name?"
	msgNeedVerify = "We need to verify your identity before discussing or resolving this case. Please answer the security question first."
	msgAllDone    = "This case has already been resolved on this call. Is there anything else I can help you with?"
)

// Agent walks one customer through the review of a flagged transaction. One
// Agent exists per call; the underlying case row is pre-seeded and mutated
// in place, never created here.
type Agent struct {
	sessionID string
	cases     *store.CaseStore
	logger    *zap.Logger
	phase     Phase
	current   *store.FraudCase
	verified  bool
}

// New creates a fraud-review agent over the given case store.
func New(cases *store.CaseStore, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.NewString()
	return &Agent{
		sessionID: sessionID,
		cases:     cases,
		logger:    logger.With(zap.String("agent", "fraud"), zap.String("session_id", sessionID)),
		phase:     PhaseGreeting,
	}
}

// Phase returns the current conversation phase.
func (a *Agent) Phase() Phase { return a.phase }

// Greet opens the call and asks for the customer's name.
func (a *Agent) Greet() string {
	a.transition(PhaseUsernameCollection)
	return MsgGreeting
}

// Lookup finds the customer's most recent pending case, matched
// case-insensitively on the exact name. On a hit the stored security
// question is returned; on a miss the conversation ends in not_found.
func (a *Agent) Lookup(ctx context.Context, name string) (string, error) {
	switch a.phase {
	case PhaseGreeting:
		a.transition(PhaseUsernameCollection)
	case PhaseUsernameCollection:
		// expected
	default:
		if a.phase.Terminal() {
			return a.terminalReply(), nil
		}
		return msgNeedVerify, nil
	}

	c, err := a.cases.PendingCaseByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		a.transition(PhaseNotFound)
		a.logger.Info("no pending case", zap.String("name", name))
		return MsgNotFound, nil
	}
	if err != nil {
		return "", fmt.Errorf("look up case: %w", err)
	}

	a.current = c
	a.transition(PhaseVerification)
	a.logger.Info("case found", zap.Uint("case_id", c.ID))
	return fmt.Sprintf("Thank you. Before we continue I need to verify your identity. %s", c.SecurityQuestion), nil
}

// Verify checks the customer's answer against the stored one,
// case-insensitively and whitespace-trimmed. One attempt only: a wrong
// answer terminates the call, records the outcome, and discloses nothing.
// A correct answer discloses the flagged transaction.
func (a *Agent) Verify(ctx context.Context, answer string) (string, error) {
	if a.phase != PhaseVerification || a.current == nil {
		if a.phase.Terminal() {
			return a.terminalReply(), nil
		}
		return msgNeedName, nil
	}

	if !strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(a.current.SecurityAnswer)) {
		a.transition(PhaseVerificationFailed)
		err := a.cases.UpdateStatus(ctx, a.current.ID, store.StatusVerificationFailed,
			"Identity verification failed during review call", false)
		if err != nil {
			return "", fmt.Errorf("record failed verification: %w", err)
		}
		a.logger.Warn("verification failed", zap.Uint("case_id", a.current.ID))
		return MsgVerificationFailed, nil
	}

	a.verified = true
	a.transition(PhaseInvestigation)
	a.logger.Info("identity verified", zap.Uint("case_id", a.current.ID))

	c := a.current
	return fmt.Sprintf(
		"Thank you, your identity is verified. We flagged a transaction on your card ending %s: %s charged ₹%.2f on %s, category %s, via %s, located in %s. Did you authorize this transaction?",
		c.CardEnding, c.TransactionName, c.TransactionAmount, c.TransactionTime,
		c.TransactionCategory, c.TransactionSource, c.TransactionLocation,
	), nil
}

// Resolve records the customer's decision on the disclosed transaction.
// Requires prior successful verification; called out of order it re-prompts.
func (a *Agent) Resolve(ctx context.Context, authorized bool) (string, error) {
	if a.phase != PhaseInvestigation || !a.verified || a.current == nil {
		if a.phase.Terminal() {
			return a.terminalReply(), nil
		}
		return msgNeedVerify, nil
	}

	c := a.current
	var status, outcome, reply string
	if authorized {
		status = store.StatusConfirmedSafe
		outcome = fmt.Sprintf("Customer confirmed the %s charge of ₹%.2f as authorized", c.TransactionName, c.TransactionAmount)
		reply = "Thank you for confirming. I've marked the transaction as authorized and your card remains active. Sorry for the inconvenience, and have a great day!"
	} else {
		status = store.StatusConfirmedFraud
		outcome = fmt.Sprintf("Customer reported the %s charge of ₹%.2f as unauthorized; card blocked and dispute filed", c.TransactionName, c.TransactionAmount)
		reply = "Understood. I've blocked your card ending " + c.CardEnding + " and filed a dispute for this charge. A replacement card is on its way, and the disputed amount will be provisionally credited within 5 business days."
	}

	if err := a.cases.UpdateStatus(ctx, c.ID, status, outcome, true); err != nil {
		return "", fmt.Errorf("resolve case: %w", err)
	}
	a.transition(PhaseResolution)
	a.logger.Info("case resolved", zap.Uint("case_id", c.ID), zap.String("status", status))
	return reply, nil
}

// terminalReply restates how the call ended; terminal phases never move on.
func (a *Agent) terminalReply() string {
	switch a.phase {
	case PhaseNotFound:
		return MsgNotFound
	case PhaseVerificationFailed:
		return MsgVerificationFailed
	default:
		return msgAllDone
	}
}

func (a *Agent) transition(to Phase) {
	if !CanTransition(a.phase, to) {
		a.logger.Warn("illegal phase transition",
			zap.String("from", string(a.phase)),
			zap.String("to", string(to)),
		)
		return
	}
	a.phase = to
}
