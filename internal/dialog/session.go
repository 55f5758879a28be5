package dialog

import (
	"sync"

	"voice-agents/internal/slots"
)

// Utterance is the normalized inbound event from a conversation
// adapter: who spoke and what was recognized. Adapters are responsible
// for producing it; the core never guesses at transport field names.
type Utterance struct {
	Identity string
	Text     string
}

// Session is the per-speaker conversation state. It is owned by the
// Store and mutated only while handling that speaker's utterances.
type Session struct {
	Record               slots.Record
	LastQuestionIndex    int
	AwaitingConfirmation bool
	Complete             bool
}

// Store keeps sessions keyed by speaker identity. The composing
// component owns it and passes it around explicitly; there is no
// package-level session state.
type Store struct {
	mu       sync.RWMutex
	schema   slots.Schema
	sessions map[string]*Session
}

func NewStore(schema slots.Schema) *Store {
	return &Store{schema: schema, sessions: make(map[string]*Session)}
}

// Get returns the session for identity, if one exists.
func (s *Store) Get(identity string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[identity]
	return sess, ok
}

// GetOrCreate returns the existing session for identity or starts a
// fresh one. An unknown identity is never an error.
func (s *Store) GetOrCreate(identity string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[identity]; ok {
		return sess
	}
	sess := &Session{Record: slots.NewRecord(s.schema)}
	s.sessions[identity] = sess
	return sess
}

// Reset discards any state for identity so the next utterance starts a
// fresh session. Completed sessions are never reset implicitly; the
// adapter decides when a new flow begins.
func (s *Store) Reset(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, identity)
}

// Active reports whether identity has a session that is still in
// progress (created and not yet complete).
func (s *Store) Active(identity string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[identity]
	return ok && !sess.Complete
}
