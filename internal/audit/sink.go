package audit

import (
	"os"
	"path/filepath"
	"sync"
)

// Sink accepts one audit event at a time, append-only, ordered.
// Implementations must make each append atomic at record granularity:
// concurrent pipelines may share a sink, and events from different tasks
// must never interleave within a single record.
type Sink interface {
	Record(Event) error
}

// Emit appends one pipeline event to the sink. A sink error propagates to
// the caller, which must treat it as fatal for the current operation.
func Emit(s Sink, taskID string, eventType EventType, reason string) error {
	return s.Record(Event{
		EventID:   NewEventID(),
		TaskID:    taskID,
		EventType: eventType,
		Timestamp: UTCNowISO(),
		Reason:    reason,
	})
}

// DefaultPath returns ~/.taskgate/audit/events.jsonl, or a relative
// fallback when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("audit", "events.jsonl")
	}
	return filepath.Join(home, ".taskgate", "audit", "events.jsonl")
}

// Recorder is an in-memory sink for tests and dry-runs.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Record appends the event to the in-memory trail.
func (r *Recorder) Record(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of the recorded events in append order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
