package history

import (
	"sync"

	"voice-agents/internal/llm"
)

// Manager keeps a rolling chat history per speaker identity, backing
// the general-purpose fallback model.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string][]llm.Message
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string][]llm.Message)}
}

func (m *Manager) Reset(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, identity)
}

func (m *Manager) AppendUser(identity, content string) {
	m.append(identity, llm.Message{Role: "user", Content: content})
}

func (m *Manager) AppendAssistant(identity, content string) {
	m.append(identity, llm.Message{Role: "assistant", Content: content})
}

func (m *Manager) append(identity string, msg llm.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[identity] = append(m.sessions[identity], msg)
}

// Get returns a copy of the identity's history in order.
func (m *Manager) Get(identity string) []llm.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	es := m.sessions[identity]
	out := make([]llm.Message, len(es))
	copy(out, es)
	return out
}
