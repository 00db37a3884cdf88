package scene

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
)

// Session is the dialog state of one user. Scene is empty while no flow is
// active.
type Session struct {
	Scene          string `json:"scene,omitempty"`
	Step           int    `json:"step,omitempty"`
	State          State  `json:"state,omitempty"`
	JustRegistered bool   `json:"justRegistered,omitempty"`
}

// Active reports whether a flow is running.
func (s *Session) Active() bool {
	return s.Scene != ""
}

func (s *Session) clearFlow() {
	s.Scene = ""
	s.Step = 0
	s.State = nil
}

// State is the flow-scoped key/value bag. Values must survive a JSON round
// trip, so accessors accept the decoded forms too.
type State map[string]interface{}

func (s State) String(key string) string {
	v, _ := s[key].(string)
	return v
}

func (s State) Int64(key string) int64 {
	switch v := s[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

func (s State) Strings(key string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func (s State) clone() State {
	if len(s) == 0 {
		return State{}
	}
	out := make(State, len(s))
	for k, v := range s {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

// Store persists sessions. Load returns an empty session for unknown users.
type Store interface {
	Load(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, userID int64, s *Session) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]Session)}
}

func (m *MemoryStore) Load(_ context.Context, userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return &Session{}, nil
	}
	s.State = s.State.clone()
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, userID int64, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !s.Active() && !s.JustRegistered {
		delete(m.sessions, userID)
		return nil
	}
	cp := *s
	cp.State = s.State.clone()
	m.sessions[userID] = cp
	return nil
}
