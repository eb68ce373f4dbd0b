package store

import "sync"

// Memory is an in-memory Store used by tests and the stateless export
// preview path. Keys are namespaced per set, so unrelated sets never
// collide.
type Memory struct {
	mu     sync.RWMutex
	states map[string]map[string]AnswerState
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{states: make(map[string]map[string]AnswerState)}
}

func (m *Memory) Get(setID, questionID string) (AnswerState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.states[setID][questionID]; ok {
		return s, nil
	}
	return DefaultState(), nil
}

func (m *Memory) Put(setID, questionID string, state AnswerState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.states[setID] == nil {
		m.states[setID] = make(map[string]AnswerState)
	}
	m.states[setID][questionID] = state
	return nil
}

func (m *Memory) All(setID string) (map[string]AnswerState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]AnswerState, len(m.states[setID]))
	for id, s := range m.states[setID] {
		out[id] = s
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
