package gateway

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewTraceID generates a short random trace ID.
func NewTraceID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("t-%x", time.Now().UnixNano())
	}
	return "t-" + hex.EncodeToString(b)
}
