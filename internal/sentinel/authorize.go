// Package sentinel validates the shape of authority tokens. This is a
// deliberate format-only stub: no cryptography, no network, deterministic,
// deny-by-default. The grammar is a contract other components and tests
// depend on; do not loosen it.
package sentinel

import (
	"regexp"
	"strings"

	"github.com/ppiankov/taskgate/internal/model"
)

// tokenPattern matches SENTINEL:<policy_id>:<opaque>, where policy_id is
// 3-64 characters of [A-Za-z0-9_.-] and the opaque tail is at least 10
// characters.
var tokenPattern = regexp.MustCompile(`^SENTINEL:([A-Za-z0-9_.-]{3,64}):(.{10,})$`)

// Authorize validates an authority token's format and, when a policy id
// pin is supplied, that the token was minted under that policy.
func Authorize(token, pinnedPolicyID string) model.Decision {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Deny("MISSING_TOKEN")
	}

	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return model.Deny("TOKEN_FORMAT_INVALID")
	}

	policyID := m[1]

	if pinnedPolicyID != "" && pinnedPolicyID != policyID {
		return model.Decision{Reason: "POLICY_ID_MISMATCH", PolicyID: policyID}
	}

	return model.Decision{Allowed: true, Reason: "ALLOW_FORMAT_OK", PolicyID: policyID}
}
