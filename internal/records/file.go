package records

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"voice-agents/internal/slots"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// FileWriter writes one JSON file per completed record beneath dir.
// Files are written to a temp name in the same directory, synced, and
// renamed into place, so the final name is either absent or complete.
type FileWriter struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewFileWriter ensures dir exists and returns a writer naming files
// <prefix>_<sanitized session id>_<unix ts>.json.
func NewFileWriter(dir, prefix string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure records dir: %w", err)
	}
	return &FileWriter{dir: dir, prefix: prefix, now: time.Now}, nil
}

func (w *FileWriter) Save(rec slots.Record, sessionID string) (string, error) {
	now := w.now().UTC()
	payload := rec.Fields()
	payload["_meta"] = Meta{
		SavedAt:   now.Format("2006-01-02T15:04:05Z"),
		SessionID: sessionID,
	}

	name := fmt.Sprintf("%s_%s_%d.json", w.prefix, SanitizeID(sessionID), now.Unix())
	final := filepath.Join(w.dir, name)
	tmp := final + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("encode record: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("sync temp: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("rename into place: %w", err)
	}
	return final, nil
}

// SanitizeID replaces every character outside [A-Za-z0-9_-] with '_'.
func SanitizeID(id string) string {
	return unsafeChars.ReplaceAllString(id, "_")
}
