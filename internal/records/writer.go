package records

import (
	"voice-agents/internal/slots"
)

// Meta is attached to every persisted record.
type Meta struct {
	SavedAt   string `json:"_saved_at"`
	SessionID string `json:"_session_id"`
}

// Writer persists a completed record durably. Save must never leave a
// partially written file visible under the final name.
// Implementations must be safe for concurrent use across sessions.
type Writer interface {
	Save(rec slots.Record, sessionID string) (path string, err error)
}
