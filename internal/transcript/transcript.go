package transcript

import "time"

// Event records a single exchange between a speaker and an agent:
// the recognized utterance and the reply that was produced for it.
// Events are expected to be appended in chronological order.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Agent     string    `json:"agent"`
	Utterance string    `json:"utterance"`
	Reply     string    `json:"reply"`
	Handled   bool      `json:"handled"`
}

// Recorder abstracts persistence of conversation events.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Append(event Event) error
	Load() ([]Event, error)
}
