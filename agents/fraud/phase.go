package fraud

// Phase is the fraud-review conversation phase.
type Phase string

const (
	PhaseGreeting           Phase = "greeting"            // Call opened
	PhaseUsernameCollection Phase = "username_collection" // Waiting for the customer's name
	PhaseVerification       Phase = "verification"        // Security question asked
	PhaseInvestigation      Phase = "investigation"       // Identity verified, transaction disclosed
	PhaseResolution         Phase = "resolution"          // Case closed on this call
	PhaseNotFound           Phase = "not_found"           // Terminal: no pending case under that name
	PhaseVerificationFailed Phase = "verification_failed" // Terminal: wrong security answer
)

// validTransitions defines the legal phase changes. Terminal phases have no
// outgoing transitions: one attempt per call, no retries.
var validTransitions = map[Phase][]Phase{
	PhaseGreeting:           {PhaseUsernameCollection},
	PhaseUsernameCollection: {PhaseVerification, PhaseNotFound},
	PhaseVerification:       {PhaseInvestigation, PhaseVerificationFailed},
	PhaseInvestigation:      {PhaseResolution},
}

// CanTransition reports whether a phase change is legal.
func CanTransition(from, to Phase) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, p := range allowed {
		if p == to {
			return true
		}
	}
	return false
}

// Terminal reports whether p ends the conversation off the happy path.
func (p Phase) Terminal() bool {
	return p == PhaseNotFound || p == PhaseVerificationFailed || p == PhaseResolution
}
