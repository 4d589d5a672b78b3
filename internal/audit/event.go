// Package audit provides the append-only event trail of the task pipeline.
// Every admission and dispatch transition is recorded as one JSONL line in
// a SHA-256 hash-chained log. The trail is the system's only durable record
// of authorization decisions: a failed append is fatal to the operation
// that emitted the event.
package audit

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// EventType enumerates the pipeline transitions recorded in the trail.
type EventType string

const (
	EventTaskReceived        EventType = "TASK_RECEIVED"
	EventTaskValidated       EventType = "TASK_VALIDATED"
	EventTaskDenied          EventType = "TASK_DENIED"
	EventTaskDispatched      EventType = "TASK_DISPATCHED"
	EventTaskNoopExecuted    EventType = "TASK_NOOP_EXECUTED"
	EventTaskNoExecutor      EventType = "TASK_NO_EXECUTOR"
	EventTaskExecuted        EventType = "TASK_EXECUTED"
	EventTaskExecutionFailed EventType = "TASK_EXECUTION_FAILED"
)

// TimestampFormat is the ISO-8601 layout used for event timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Event is one line in the audit trail. Created once, appended, never
// mutated or deleted. All fields are flat so json.Marshal ordering is
// deterministic and the line hash is reproducible.
type Event struct {
	EventID   string    `json:"event_id"`
	TaskID    string    `json:"task_id"`
	EventType EventType `json:"event_type"`
	Timestamp string    `json:"timestamp"`
	Reason    string    `json:"reason,omitempty"`
	PrevHash  string    `json:"prev_hash"`
}

// NewEventID generates a non-cryptographic event id. The leading hex
// timestamp makes ids roughly sortable by creation time; the random
// suffix makes collisions within one clock tick implausible.
func NewEventID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("evt_%x", time.Now().UnixNano())
	}
	return fmt.Sprintf("evt_%x_%s", time.Now().UnixMicro(), hex.EncodeToString(b))
}

// UTCNowISO returns the current UTC time in the trail's timestamp format.
func UTCNowISO() string {
	return time.Now().UTC().Format(TimestampFormat)
}
