package model

import "strings"

// Denial code families. Each admission gate owns exactly one code; the
// first failing gate short-circuits the chain.
const (
	CodeSchemaInvalid = "SCHEMA_INVALID"
	CodeDomainDeny    = "DOMAIN_DENY"
	CodeSentinelDeny  = "SENTINEL_DENY"
	CodeScopeDeny     = "SCOPE_DENY"
)

// Denial is a terminal admission failure. It is returned, not thrown:
// callers decide whether to retry with corrected input, reject the
// originating request, or escalate. The pipeline never retries.
type Denial struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

func (d *Denial) Error() string {
	return d.Code + ":" + d.Message
}

// NewDenial builds a denial with the given code and message.
func NewDenial(code, message string) *Denial {
	return &Denial{Code: code, Message: message}
}

// DenialFrom builds a denial from a gate decision, appending the
// comma-joined missing list to the message when present.
func DenialFrom(code string, dec Decision) *Denial {
	msg := dec.Reason
	if len(dec.Missing) > 0 {
		msg += ":" + strings.Join(dec.Missing, ",")
	}
	return &Denial{Code: code, Message: msg, Missing: dec.Missing}
}
