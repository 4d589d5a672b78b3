package model

// Decision is the outcome of a single admission gate. Decisions are
// produced once and never mutated.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`

	// Missing lists required capabilities absent from the task scope,
	// in the order of the required list. Present only when non-empty.
	Missing []string `json:"missing,omitempty"`

	// PolicyID carries the policy id extracted from an authority token,
	// for diagnostics. Set by the sentinel gate only.
	PolicyID string `json:"policy_id,omitempty"`
}

// Allow returns an allowing decision with the given reason.
func Allow(reason string) Decision {
	return Decision{Allowed: true, Reason: reason}
}

// Deny returns a denying decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// DenyMissing returns a denying decision carrying the missing capabilities.
func DenyMissing(reason string, missing []string) Decision {
	return Decision{Allowed: false, Reason: reason, Missing: missing}
}
