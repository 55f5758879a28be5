package dialog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voice-agents/internal/records"
	"voice-agents/internal/slots"
)

type fakeWriter struct {
	err   error
	saves []string
}

func (w *fakeWriter) Save(rec slots.Record, sessionID string) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	path := fmt.Sprintf("/records/order_%s_%d.json", sessionID, len(w.saves))
	w.saves = append(w.saves, sessionID)
	return path, nil
}

func newCoffeeTracker(w records.Writer, autoSave bool) *Tracker {
	p := slots.CoffeeProfile()
	return NewTracker(p, NewStore(p.Schema), w, autoSave)
}

func say(t *testing.T, tr *Tracker, identity, text string) (string, bool) {
	t.Helper()
	return tr.HandleUtterance(Utterance{Identity: identity, Text: text})
}

func TestCompletionScenarioAutoSave(t *testing.T) {
	dir := t.TempDir()
	writer, err := records.NewFileWriter(dir, "order")
	if err != nil {
		t.Fatalf("init writer: %v", err)
	}
	tr := newCoffeeTracker(writer, true)

	utterances := []string{"I want a latte", "medium", "oat", "no extras", "my name is Sam"}
	var reply string
	var handled bool
	for i, u := range utterances {
		reply, handled = say(t, tr, "user1", u)
		if !handled {
			t.Fatalf("utterance %d (%q): handled=false, reply=%q", i, u, reply)
		}
	}
	if !strings.Contains(reply, "saved as order_user1_") {
		t.Fatalf("final reply missing saved file reference: %q", reply)
	}

	sess, ok := tr.Store().Get("user1")
	if !ok || !sess.Complete || sess.AwaitingConfirmation {
		t.Fatalf("session not terminal: %+v", sess)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("want exactly one persisted file, got %d", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	var got struct {
		DrinkType string   `json:"drinkType"`
		Size      string   `json:"size"`
		Milk      string   `json:"milk"`
		Extras    []string `json:"extras"`
		Name      string   `json:"name"`
		Meta      struct {
			SavedAt   string `json:"_saved_at"`
			SessionID string `json:"_session_id"`
		} `json:"_meta"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode saved file: %v", err)
	}
	if got.DrinkType != "latte" || got.Size != "medium" || got.Milk != "oat" || got.Name != "Sam" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.Extras == nil || len(got.Extras) != 0 {
		t.Fatalf("extras = %v, want explicit empty list", got.Extras)
	}
	if got.Meta.SessionID != "user1" || got.Meta.SavedAt == "" {
		t.Fatalf("unexpected meta: %+v", got.Meta)
	}
}

func TestIntermediatePromptsFollowSchema(t *testing.T) {
	tr := newCoffeeTracker(&fakeWriter{}, true)
	p := slots.CoffeeProfile()

	reply, _ := say(t, tr, "u", "I want a latte")
	if reply != p.Schema[1].Prompt {
		t.Fatalf("after drink, prompt = %q, want size prompt", reply)
	}
	reply, _ = say(t, tr, "u", "medium")
	if reply != p.Schema[2].Prompt {
		t.Fatalf("after size, prompt = %q, want milk prompt", reply)
	}
}

func TestMonotonicQuestionIndex(t *testing.T) {
	tr := newCoffeeTracker(&fakeWriter{}, true)

	last := 0
	for _, u := range []string{"hello there", "I want a mocha", "small", "hmm", "almond", "none"} {
		say(t, tr, "u", u)
		sess, _ := tr.Store().Get("u")
		if sess.LastQuestionIndex < last {
			t.Fatalf("index went backwards: %d -> %d after %q", last, sess.LastQuestionIndex, u)
		}
		last = sess.LastQuestionIndex
	}
}

func TestConfirmationFlowSaveOnYes(t *testing.T) {
	w := &fakeWriter{}
	tr := newCoffeeTracker(w, false)

	for _, u := range []string{"large cold brew", "oat milk", "no extras", "my name is Ada"} {
		say(t, tr, "u", u)
	}
	sess, _ := tr.Store().Get("u")
	if !sess.AwaitingConfirmation {
		t.Fatalf("expected awaiting confirmation, got %+v", sess)
	}
	if len(w.saves) != 0 {
		t.Fatalf("saved before confirmation")
	}

	reply, handled := say(t, tr, "u", "yes please")
	if !handled || !strings.Contains(reply, "Confirmed") {
		t.Fatalf("confirm reply = (%q, %v)", reply, handled)
	}
	if len(w.saves) != 1 {
		t.Fatalf("want one save, got %d", len(w.saves))
	}
	sess, _ = tr.Store().Get("u")
	if !sess.Complete || sess.AwaitingConfirmation {
		t.Fatalf("session not terminal after confirm: %+v", sess)
	}
}

func TestConfirmationCancelKeepsRecord(t *testing.T) {
	w := &fakeWriter{}
	tr := newCoffeeTracker(w, false)

	for _, u := range []string{"large cold brew", "oat milk", "no extras", "my name is Ada"} {
		say(t, tr, "u", u)
	}

	reply, handled := say(t, tr, "u", "no, cancel")
	if !handled {
		t.Fatalf("cancel should be handled")
	}
	if !strings.Contains(reply, "nothing was saved") {
		t.Fatalf("cancel reply = %q", reply)
	}
	sess, _ := tr.Store().Get("u")
	if sess.AwaitingConfirmation || sess.Complete {
		t.Fatalf("session should be back to collecting: %+v", sess)
	}
	if sess.Record.Scalar("drinkType") != "cold brew" || sess.Record.Scalar("name") != "Ada" {
		t.Fatalf("record lost on cancel: %v", sess.Record.Fields())
	}
	if len(w.saves) != 0 {
		t.Fatalf("file written despite cancel")
	}
}

func TestConfirmationAutoConfirmPhraseBeatsNo(t *testing.T) {
	w := &fakeWriter{}
	tr := newCoffeeTracker(w, false)

	for _, u := range []string{"large cold brew", "oat milk", "no extras", "my name is Ada"} {
		say(t, tr, "u", u)
	}

	// Matches both the negative vocabulary ("no") and an auto-confirm
	// phrase; the phrase wins.
	_, _ = say(t, tr, "u", "no wait, place the order")
	if len(w.saves) != 1 {
		t.Fatalf("auto-confirm phrase did not save: %d saves", len(w.saves))
	}
}

func TestConfirmationRepromptsOnUnclearAnswer(t *testing.T) {
	tr := newCoffeeTracker(&fakeWriter{}, false)

	for _, u := range []string{"large cold brew", "oat milk", "no extras", "my name is Ada"} {
		say(t, tr, "u", u)
	}
	reply, handled := say(t, tr, "u", "hmm maybe")
	if !handled || !strings.Contains(reply, "'yes'") {
		t.Fatalf("unclear answer reply = (%q, %v)", reply, handled)
	}
	sess, _ := tr.Store().Get("u")
	if !sess.AwaitingConfirmation {
		t.Fatalf("should still await confirmation")
	}
}

func TestWriteFailureRetainsState(t *testing.T) {
	w := &fakeWriter{err: errors.New("disk full")}
	tr := newCoffeeTracker(w, true)

	var reply string
	var handled bool
	for _, u := range []string{"I want a latte", "medium", "oat", "no extras", "my name is Sam"} {
		reply, handled = say(t, tr, "u", u)
	}
	if !handled || !strings.Contains(reply, "try again") {
		t.Fatalf("failure reply = (%q, %v)", reply, handled)
	}

	sess, _ := tr.Store().Get("u")
	if sess.Complete {
		t.Fatalf("session must not complete on failed write")
	}
	if !sess.AwaitingConfirmation {
		t.Fatalf("session should be retryable (awaiting confirmation)")
	}
	if sess.Record.Scalar("drinkType") != "latte" || sess.Record.Scalar("name") != "Sam" {
		t.Fatalf("record lost on failed write: %v", sess.Record.Fields())
	}

	// Retry succeeds once the writer recovers.
	w.err = nil
	reply, handled = say(t, tr, "u", "confirm")
	if !handled || len(w.saves) != 1 {
		t.Fatalf("retry failed: reply=%q saves=%d", reply, len(w.saves))
	}
	sess, _ = tr.Store().Get("u")
	if !sess.Complete {
		t.Fatalf("session should complete after retry")
	}
}

func TestBlankUtteranceGreetsNewSession(t *testing.T) {
	tr := newCoffeeTracker(&fakeWriter{}, true)
	p := slots.CoffeeProfile()

	reply, handled := say(t, tr, "newcomer", "")
	if handled {
		t.Fatalf("greeting must not suppress the fallback")
	}
	if reply != p.Greeting {
		t.Fatalf("reply = %q, want greeting", reply)
	}
}

func TestBlankUtteranceMidSessionRepeatsQuestion(t *testing.T) {
	tr := newCoffeeTracker(&fakeWriter{}, true)
	p := slots.CoffeeProfile()

	say(t, tr, "u", "I want a latte")
	reply, _ := say(t, tr, "u", "   ")
	if reply != p.Schema[1].Prompt {
		t.Fatalf("reply = %q, want size prompt", reply)
	}
}

func TestCompletedSessionIsOutOfFlow(t *testing.T) {
	tr := newCoffeeTracker(&fakeWriter{}, true)

	for _, u := range []string{"I want a latte", "medium", "oat", "no extras", "my name is Sam"} {
		say(t, tr, "u", u)
	}
	reply, handled := say(t, tr, "u", "another latte please")
	if handled || reply != "" {
		t.Fatalf("completed session replied (%q, %v)", reply, handled)
	}
}

func TestUnknownIdentityCreatesSession(t *testing.T) {
	tr := newCoffeeTracker(&fakeWriter{}, true)

	_, handled := say(t, tr, "stranger", "I want an americano")
	if !handled {
		t.Fatalf("fresh identity should be handled")
	}
	if _, ok := tr.Store().Get("stranger"); !ok {
		t.Fatalf("session was not created")
	}
}

func TestStoreIsolatesIdentities(t *testing.T) {
	tr := newCoffeeTracker(&fakeWriter{}, true)

	say(t, tr, "a", "I want a latte")
	say(t, tr, "b", "I want an espresso")

	sa, _ := tr.Store().Get("a")
	sb, _ := tr.Store().Get("b")
	if sa.Record.Scalar("drinkType") != "latte" || sb.Record.Scalar("drinkType") != "espresso" {
		t.Fatalf("sessions bled into each other: a=%v b=%v", sa.Record.Fields(), sb.Record.Fields())
	}
}

func TestStoreResetDiscardsState(t *testing.T) {
	p := slots.CoffeeProfile()
	store := NewStore(p.Schema)

	s := store.GetOrCreate("u")
	s.Record.SetScalar("drinkType", "latte")
	store.Reset("u")

	if store.Active("u") {
		t.Fatalf("reset identity still active")
	}
	if fresh := store.GetOrCreate("u"); fresh.Record.Scalar("drinkType") != "" {
		t.Fatalf("reset did not discard record")
	}
}
