package messages

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Level classifies a user-facing message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ErrSessionRequired is returned when a message targets no session.
var ErrSessionRequired = errors.New("messages: session id required")

// Message is a flashed notification awaiting display.
type Message struct {
	Level Level
	Text  string
}

// Messenger delivers a message to the user owning sessionID.
type Messenger interface {
	MessageUser(ctx context.Context, sessionID string, level Level, text string) error
}

// SessionStore queues messages per session until the next page render pops
// them.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]Message
}

var _ Messenger = (*SessionStore)(nil)

// NewSessionStore constructs an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string][]Message{}}
}

// MessageUser appends text to the session queue.
func (s *SessionStore) MessageUser(_ context.Context, sessionID string, level Level, text string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionRequired
	}
	if level == "" {
		level = LevelInfo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], Message{Level: level, Text: text})
	return nil
}

// Peek returns the pending messages without consuming them.
func (s *SessionStore) Peek(sessionID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.sessions[sessionID]
	out := make([]Message, len(pending))
	copy(out, pending)
	return out
}

// Pop returns and clears the pending messages.
func (s *SessionStore) Pop(sessionID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return pending
}
