package dialog

import (
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"voice-agents/internal/records"
	"voice-agents/internal/slots"
)

var (
	yesRe = regexp.MustCompile(`(?i)\b(yes|yeah|yep|confirm|sure|please do it|ok|okay|yup)\b`)
	noRe  = regexp.MustCompile(`(?i)\b(no|nope|cancel|don't|do not|not now)\b`)

	// Checked before the yes/no vocabularies so an utterance matching
	// both ("no wait, place the order") resolves deterministically.
	confirmPhrases = []string{"place order", "place it", "place the order", "confirm order", "confirm please", "go ahead"}
)

// Tracker drives one profile's slot-filling conversation: it extracts
// fields from each utterance, picks the next question, detects
// completion, and hands finished records to the writer.
//
// HandleUtterance is safe to call concurrently for distinct identities;
// utterances for one identity must be delivered sequentially, which the
// adapters guarantee.
type Tracker struct {
	profile  slots.Profile
	store    *Store
	writer   records.Writer
	autoSave bool
}

// NewTracker wires a tracker for one profile. With autoSave the record
// is persisted the moment every slot is satisfied; otherwise the
// tracker asks for an explicit yes/no first.
func NewTracker(profile slots.Profile, store *Store, writer records.Writer, autoSave bool) *Tracker {
	return &Tracker{profile: profile, store: store, writer: writer, autoSave: autoSave}
}

// Store exposes the session store so the composing adapter can check
// activity and apply its reset policy.
func (t *Tracker) Store() *Store { return t.store }

// HandleUtterance advances the session for u.Identity with u.Text and
// returns the reply to speak plus whether the interaction was handled
// (handled=true tells the adapter to suppress any general-purpose
// fallback response).
func (t *Tracker) HandleUtterance(u Utterance) (reply string, handled bool) {
	text := strings.TrimSpace(u.Text)
	sess := t.store.GetOrCreate(u.Identity)
	schema := t.profile.Schema

	if sess.Complete {
		// This session's flow is over; the adapter decides whether a
		// new one should start.
		return "", false
	}

	if text == "" {
		if sess.AwaitingConfirmation {
			return "Please say 'yes' to confirm or 'no' to cancel.", false
		}
		if sess.LastQuestionIndex == 0 && sess.Record.Empty() {
			return t.profile.Greeting, false
		}
		if prompt, _, ok := schema.NextQuestion(sess.Record, sess.LastQuestionIndex); ok {
			return prompt, false
		}
		return "", false
	}

	if sess.AwaitingConfirmation {
		return t.handleConfirmation(u.Identity, sess, text)
	}

	slots.Extract(schema, sess.Record, text)

	// A comma-separated direct answer to the pending list question is
	// segmented even when no item is a known keyword.
	if _, idx, ok := schema.NextQuestion(sess.Record, 0); ok {
		slots.AnswerPending(schema[idx], sess.Record, text)
	}

	if _, idx, ok := schema.NextQuestion(sess.Record, 0); ok {
		if idx > sess.LastQuestionIndex {
			sess.LastQuestionIndex = idx
		}
	} else {
		sess.LastQuestionIndex = len(schema)
	}

	if schema.Complete(sess.Record) {
		summary := t.profile.Summary(sess.Record)
		if t.autoSave {
			path, err := t.save(u.Identity, sess)
			if err != nil {
				// Keep the record and leave the session retryable.
				sess.AwaitingConfirmation = true
				return "Sorry, I couldn't save that right now. Please say 'confirm' to try again or 'no' to cancel.", true
			}
			sess.Complete = true
			return fmt.Sprintf("%sAll set — saved as %s. It'll be ready shortly!", summary, filepath.Base(path)), true
		}
		sess.AwaitingConfirmation = true
		return summary + "Would you like to confirm? Please say yes or no.", true
	}

	prompt, _, _ := schema.NextQuestion(sess.Record, sess.LastQuestionIndex)
	return prompt, true
}

func (t *Tracker) handleConfirmation(identity string, sess *Session, text string) (string, bool) {
	low := strings.ToLower(text)
	affirmative := yesRe.MatchString(text)
	for _, phr := range confirmPhrases {
		if strings.Contains(low, phr) {
			affirmative = true
			break
		}
	}
	if affirmative {
		path, err := t.save(identity, sess)
		if err != nil {
			return "Sorry, I couldn't save that due to an internal error. Please say 'confirm' to retry or 'no' to cancel.", true
		}
		sess.Complete = true
		sess.AwaitingConfirmation = false
		return fmt.Sprintf("%sConfirmed and saved as %s. Thank you!", t.profile.Summary(sess.Record), filepath.Base(path)), true
	}
	if noRe.MatchString(text) {
		sess.AwaitingConfirmation = false
		return "Okay — nothing was saved. Which part would you like to change?", true
	}
	return "Please say 'yes' to confirm or 'no' to cancel.", true
}

// save hands a snapshot of the record to the writer. The in-memory
// record is never cleared on failure; the cause is logged and only a
// conversational reply reaches the user.
func (t *Tracker) save(identity string, sess *Session) (string, error) {
	path, err := t.writer.Save(sess.Record.Clone(), identity)
	if err != nil {
		log.Printf("failed to save %s record for %s: %v", t.profile.Name, identity, err)
		return "", err
	}
	log.Printf("saved %s record for %s -> %s", t.profile.Name, identity, path)
	return path, nil
}
