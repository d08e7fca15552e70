// Package slot implements the slot-filling state tracker shared by all
// voicedesk agents: an ordered schema of named conversational fields, a
// per-session value store, a completeness predicate, and a next-prompt
// policy. The tracker is deliberately forgiving — updates with empty values
// are ignored and unknown fields are dropped, so an extraction pass that
// recognized nothing leaves the state untouched.
package slot
